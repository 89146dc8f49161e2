package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoaxify/hoaxify-cli/internal/client/editor"
	"github.com/hoaxify/hoaxify-cli/internal/filex"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// EditProfile runs the interactive profile editor over the session
// user. Edits accumulate in a draft; "save" submits, "cancel" restores
// the committed profile, including the previous avatar when a new image
// was chosen but never saved.
func (a *App) EditProfile(ctx context.Context) error {
	current := a.session.Current()
	if current == nil || !current.IsLoggedIn {
		fmt.Fprintln(a.out, "Log in to edit your profile.")
		return nil
	}

	c := editor.New(*current, a.users.UpdateProfile)
	if err := c.BeginEdit(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Editing profile. Commands: name <text>, image <path>, show, save, cancel")
	for {
		line, err := getSimpleText(a.reader, "edit", a.out)
		if err != nil {
			return err
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "name":
			if arg == "" {
				fmt.Fprintln(a.out, "Usage: name <display name>")
				continue
			}
			if err := c.Change("displayName", func(u *models.User) { u.DisplayName = arg }); err != nil {
				return err
			}

		case "image":
			if arg == "" {
				fmt.Fprintln(a.out, "Usage: image <path to image file>")
				continue
			}
			dataURI, err := filex.ReadImageDataURI(arg)
			if err != nil {
				fmt.Fprintln(a.out, "Cannot use that file:", err)
				continue
			}
			if err := c.Change("image", func(u *models.User) { u.Image = dataURI }); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "New avatar staged; 'save' to upload it.")

		case "show":
			printUser(a.out, c.Draft())

		case "cancel":
			if err := c.Cancel(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Changes discarded.")
			return nil

		case "save":
			if err := c.Submit(ctx); err != nil {
				if errs := c.Errors(); len(errs) > 0 {
					printErr(a.out, err)
					fmt.Fprintln(a.out, "Fix the fields above, or 'cancel'.")
					continue
				}
				printErr(a.out, err)
				continue
			}
			fmt.Fprintln(a.out, "Profile updated.")
			return nil

		case "":
			continue

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// splitCommand separates the first token from the rest of the line.
func splitCommand(line string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(strings.TrimSpace(line), " ")
	return cmd, strings.TrimSpace(arg)
}
