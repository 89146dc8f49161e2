package cli

import (
	"context"
	"fmt"

	"github.com/hoaxify/hoaxify-cli/internal/client/pager"
)

// Users browses the paginated user listing.
func (a *App) Users(ctx context.Context) error {
	p := pager.New(a.config.UserPageSize, a.users.List)
	return browse(ctx, a, p, printUser)
}

// User shows a single profile and the user's most recent hoaxes.
func (a *App) User(ctx context.Context, username string) error {
	user, err := a.users.Get(ctx, username)
	if err != nil {
		printErr(a.out, err)
		return nil
	}
	printUser(a.out, user)

	feed, err := a.hoaxes.UserFeed(username)(ctx, 0, a.config.HoaxPageSize)
	if err != nil {
		printErr(a.out, err)
		return nil
	}
	if len(feed.Content) == 0 {
		fmt.Fprintln(a.out, "No hoaxes yet.")
		return nil
	}
	for _, hoax := range feed.Content {
		printHoax(a.out, hoax)
	}
	return nil
}

// Profile shows the current session user.
func (a *App) Profile(ctx context.Context) error {
	current := a.session.Current()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	printUser(a.out, *current)
	return nil
}
