package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/momento-app/momento/internal/client/api"
)

func (a *App) List(ctx context.Context) error {
	posts := a.feed.Posts()
	if len(posts) == 0 {
		printlnFn("The feed is empty")
		return nil
	}

	for _, p := range posts {
		printlnFn(fmt.Sprintf("[%s] %s: %s", p.ID, p.AuthorEmail, p.Caption))
		printlnFn(fmt.Sprintf("    %s | likes: %d | comments: %d",
			p.CreatedAt.Local().Format("2006-01-02 15:04"), len(p.Likes), len(p.Comments)))
		for _, c := range p.Comments {
			printlnFn(fmt.Sprintf("    %s: %s", c.AuthorEmail, c.Text))
		}
	}
	return nil
}

// Post creates a feed entry. The image may be a URL (used as-is) or a local
// file path, which is inlined as a data URI and uploaded to the server on a
// best-effort basis.
func (a *App) Post(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Log in first")
		return nil
	}

	image, err := GetSimpleText(a.reader, "Image URL or file path", os.Stdout)
	if err != nil {
		return err
	}
	caption, err := GetSimpleText(a.reader, "Caption", os.Stdout)
	if err != nil {
		return err
	}

	imageURL := image
	if !strings.HasPrefix(image, "http://") && !strings.HasPrefix(image, "https://") {
		data, err := os.ReadFile(image)
		if err != nil {
			printlnFn("Could not read image file:", err.Error())
			return err
		}

		ct := mime.TypeByExtension(filepath.Ext(image))
		if ct == "" {
			ct = "application/octet-stream"
		}
		imageURL = "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)

		// The local feed does not wait for the server's acknowledgment.
		if err := a.api.Upload(ctx, filepath.Base(image), data, caption); err != nil {
			a.log.Warn(ctx, "image upload failed, post kept locally", "error", err)
		}
	}

	p := a.feed.AddPost(ctx, imageURL, caption, u.ID, u.Email)
	printlnFn("Posted", p.ID)
	return nil
}

func (a *App) Like(ctx context.Context, postID string) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Log in first")
		return nil
	}
	if postID == "" {
		printlnFn("Usage: like <post-id>")
		return nil
	}

	a.feed.LikePost(ctx, postID, u.ID)
	return nil
}

func (a *App) Comment(ctx context.Context, postID string) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Log in first")
		return nil
	}
	if postID == "" {
		printlnFn("Usage: comment <post-id>")
		return nil
	}

	text, err := GetSimpleText(a.reader, "Comment", os.Stdout)
	if err != nil {
		return err
	}

	a.feed.AddComment(ctx, postID, u.ID, u.Email, text)
	return nil
}

// Delete removes a post locally and tells the server, in that order: the
// optimistic cache never waits on the network.
func (a *App) Delete(ctx context.Context, postID string) error {
	if postID == "" {
		printlnFn("Usage: delete <post-id>")
		return nil
	}

	a.feed.DeletePost(ctx, postID)

	if err := a.api.DeletePost(ctx, postID); err != nil && !errors.Is(err, api.ErrNotFound) {
		a.log.Warn(ctx, "remote delete failed", "post", postID, "error", err)
	}
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.feed.Refresh(ctx); err != nil {
		printlnFn("Could not refresh the feed:", err.Error())
		return err
	}
	printlnFn("Feed refreshed")
	return nil
}
