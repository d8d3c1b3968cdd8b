package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/filex"
	"github.com/dmitrijs2005/nexuspost/internal/netx"
)

// writeClipboard and downloadFile are test seams.
var (
	writeClipboard = clipboard.WriteAll
	downloadFile   = netx.DownloadFile
)

// Keys prompts for both provider keys, offering the stored values as
// defaults, and initializes the backend with them.
func (a *App) Keys(ctx context.Context) error {
	stored, err := a.gen.PrefillKeys(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not read stored provider keys", "error", err)
	}

	hf, err := a.promptSecret("Hugging Face API key", stored.HuggingFace)
	if err != nil {
		return err
	}
	gm, err := a.promptSecret("Gemini API key", stored.Gemini)
	if err != nil {
		return err
	}

	if err := a.gen.Initialize(ctx, models.ProviderKeys{HuggingFace: hf, Gemini: gm}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "APIs initialized successfully!")
	return nil
}

// Generate walks the user through the post form and submits it.
func (a *App) Generate(ctx context.Context) error {
	req, err := a.generationForm()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, metaStyle.Render("Generating..."))
	res, err := a.gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Content generated successfully!")
	fmt.Fprintln(a.out, renderResult(res))
	return nil
}

func (a *App) generationForm() (models.GenerationRequest, error) {
	req := models.DefaultGenerationRequest()

	topic, err := a.promptDefault("Topic", "")
	if err != nil {
		return req, err
	}
	req.Topic = topic

	platforms := make([]string, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		platforms = append(platforms, string(p))
	}
	platform, err := a.promptDefault("Platform ("+strings.Join(platforms, ", ")+")", string(req.Platform))
	if err != nil {
		return req, err
	}
	req.Platform = models.Platform(strings.ToLower(platform))

	count, err := a.promptDefault(fmt.Sprintf("Number of images (%d-%d)", models.MinImageCount, models.MaxImageCount), strconv.Itoa(req.ImageCount))
	if err != nil {
		return req, err
	}
	if req.ImageCount, err = strconv.Atoi(count); err != nil {
		return req, &models.ValidationError{Field: "imageCount", Message: fmt.Sprintf("Number of images must be a whole number, got %q", count), Err: err}
	}

	lengths := make([]string, 0, len(models.PostLengths))
	for _, l := range models.PostLengths {
		lengths = append(lengths, string(l))
	}
	length, err := a.promptDefault("Post length ("+strings.Join(lengths, ", ")+")", string(req.PostLength))
	if err != nil {
		return req, err
	}
	req.PostLength = models.PostLength(strings.ToLower(length))

	temp, err := a.promptDefault("Creativity (temperature 0-1)", strconv.FormatFloat(req.Temperature, 'f', -1, 64))
	if err != nil {
		return req, err
	}
	if req.Temperature, err = strconv.ParseFloat(temp, 64); err != nil {
		return req, &models.ValidationError{Field: "temperature", Message: fmt.Sprintf("Temperature must be a number, got %q", temp), Err: err}
	}

	return req, nil
}

func (a *App) lastResult() (*models.GenerationResult, error) {
	res := a.gen.Result()
	if res == nil {
		return nil, &models.ValidationError{Field: "result", Message: "Nothing generated yet. Run 'generate' first."}
	}
	return res, nil
}

// ShowResult re-renders the last generated post.
func (a *App) ShowResult(ctx context.Context) error {
	res, err := a.lastResult()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderResult(res))
	return nil
}

// Copy puts the generated text on the clipboard. With an id argument the
// content of that history post is copied instead.
func (a *App) Copy(ctx context.Context, args []string) error {
	var text string
	if len(args) > 0 {
		p, err := a.findPost(ctx, args[0])
		if err != nil {
			return err
		}
		text = p.Content
	} else {
		res, err := a.lastResult()
		if err != nil {
			return err
		}
		text = res.Text
	}

	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(a.out, "Content copied to clipboard!")
	return nil
}

// Download saves every image of the last result into dir (default ".").
// Relative image URLs are resolved against the backend base URL.
func (a *App) Download(ctx context.Context, args []string) error {
	res, err := a.lastResult()
	if err != nil {
		return err
	}
	if len(res.Images) == 0 {
		return &models.ValidationError{Field: "images", Message: "The last result has no images"}
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return err
	}

	for i, img := range res.Images {
		u, err := netx.ResolveURL(a.baseURL, img)
		if err != nil {
			return err
		}
		path, err := downloadFile(ctx, a.http, u, dir, netx.FileNameFor(u, i))
		if err != nil {
			a.log.Warn(ctx, "image download failed", "url", u, "error", err)
			return fmt.Errorf("image %d: %w", i+1, err)
		}
		fmt.Fprintf(a.out, "Image %d saved to %s\n", i+1, path)
	}
	return nil
}
