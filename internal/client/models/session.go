package models

// User is the account profile returned by the auth endpoints.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProviderKeys are the user's third-party credentials for text and image
// generation. The backend calls them hf_api_key and gemini_api_key.
type ProviderKeys struct {
	HuggingFace string `json:"hf_api_key"`
	Gemini      string `json:"gemini_api_key"`
}

// Complete reports whether both keys are set.
func (k ProviderKeys) Complete() bool {
	return k.HuggingFace != "" && k.Gemini != ""
}

// Session is the locally cached credential state. An empty Token means the
// user is not logged in; nil User or ProviderKeys mean "not stored".
type Session struct {
	Token        string
	User         *User
	ProviderKeys *ProviderKeys
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
