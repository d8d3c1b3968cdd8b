package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/filex"
)

// History loads the posts from the backend and lists them newest first.
func (a *App) History(ctx context.Context) error {
	posts, err := a.history.Load(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, metaStyle.Render("No posts yet."))
		return nil
	}
	for _, p := range posts {
		fmt.Fprintln(a.out, renderPostSummary(p))
	}
	return nil
}

// findPost looks rawID up in the loaded history, loading it first when the
// list is still empty.
func (a *App) findPost(ctx context.Context, rawID string) (models.HistoryPost, error) {
	if p, ok := a.history.Find(rawID); ok {
		return p, nil
	}
	if len(a.history.Posts()) == 0 {
		if _, err := a.history.Load(ctx); err != nil {
			return models.HistoryPost{}, err
		}
		if p, ok := a.history.Find(rawID); ok {
			return p, nil
		}
	}
	return models.HistoryPost{}, &models.ValidationError{Field: "id", Message: fmt.Sprintf("Post %s not found", rawID)}
}

// Show prints one post in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("show <id>")
	}
	p, err := a.findPost(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderPost(p))
	return nil
}

// Delete removes one post. The local list only changes once the backend
// confirmed the delete.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("delete <id>")
	}
	if err := a.history.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post deleted successfully")
	return nil
}

// Export writes the history to a .json or .yaml/.yml file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("export <file.json|file.yaml>")
	}
	path := args[0]

	posts := a.history.Posts()
	if len(posts) == 0 {
		var err error
		if posts, err = a.history.Load(ctx); err != nil {
			return err
		}
	}

	data, err := encodePosts(path, posts)
	if err != nil {
		return err
	}
	if path, err = filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	a.log.Info(ctx, "history exported", "path", path, "posts", len(posts))
	fmt.Fprintf(a.out, "Exported %d posts to %s\n", len(posts), path)
	return nil
}

// encodePosts picks the format from the file extension.
func encodePosts(path string, posts []models.HistoryPost) ([]byte, error) {
	if posts == nil {
		posts = []models.HistoryPost{}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.MarshalIndent(posts, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(posts)
	default:
		return nil, &models.ValidationError{Field: "file", Message: "Export file must end in .json, .yaml or .yml"}
	}
}
