package cli

import (
	"errors"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/client/services"
)

// userMessage turns a command error into the notification shown to the user.
func userMessage(err error) string {
	var (
		ve *models.ValidationError
		re *client.RequestError
		ne *client.NetworkError
	)

	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &re):
		return re.Message
	case errors.As(err, &ne):
		return client.GenericErrorMessage
	case errors.Is(err, client.ErrNoToken):
		return "Please login to continue"
	case errors.Is(err, services.ErrStaleResult):
		return "A newer generation request replaced this one"
	default:
		return "Error: " + err.Error()
	}
}

func usage(text string) error {
	return &models.ValidationError{Field: "args", Message: "Usage: " + text}
}
