package cli

import (
	"context"
	"fmt"

	"github.com/hoaxify/hoaxify-cli/internal/client/editor"
	"github.com/hoaxify/hoaxify-cli/internal/client/pager"
)

// Feed browses the global hoax feed, newest first.
func (a *App) Feed(ctx context.Context) error {
	p := pager.New(a.config.HoaxPageSize, a.hoaxes.Feed)
	return browse(ctx, a, p, printHoax)
}

// MyHoaxes browses the current user's own hoaxes.
func (a *App) MyHoaxes(ctx context.Context) error {
	current := a.session.Current()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	p := pager.New(a.config.HoaxPageSize, a.hoaxes.UserFeed(current.Username))
	return browse(ctx, a, p, printHoax)
}

// Post is the hoax composer: an editable draft that can be corrected in
// place after a validation failure and is discarded on cancel. The
// committed value of the composer is always the empty string, so a
// successful post resets it rather than keeping the sent content.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to post.")
		return nil
	}

	c := editor.New("", func(ctx context.Context, draft string) (string, error) {
		if _, err := a.hoaxes.Post(ctx, draft); err != nil {
			return "", err
		}
		return "", nil
	})
	if err := c.BeginEdit(); err != nil {
		return err
	}

	for {
		content, err := GetMultiline(a.reader, "What's happening?", a.out)
		if err != nil {
			return err
		}
		if content == "" {
			_ = c.Cancel()
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		if err := c.Change("content", func(d *string) { *d = content }); err != nil {
			return err
		}

		err = c.Submit(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "Hoaxified!")
			return nil
		}

		if msg := c.FieldError("content"); msg != "" {
			// draft survives a validation failure; let the user retype
			fmt.Fprintf(a.out, "  content: %s\n", msg)
			fmt.Fprintf(a.out, "Your draft: %s\n", c.Draft())
			continue
		}
		printErr(a.out, err)
		return nil
	}
}
