package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// printErr renders a classified failure: validation errors per field,
// otherwise the server (or transport) message.
func printErr(w io.Writer, err error) {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		fields := ve.FieldErrors()
		if len(fields) == 0 {
			fmt.Fprintln(w, "The request was rejected.")
			return
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, fields[name])
		}
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(w, apiErr.Error())
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		fmt.Fprintln(w, "Server unavailable, please try again later.")
		return
	}
	fmt.Fprintln(w, "error:", err)
}

func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "%s (@%s)\n", u.DisplayName, u.Username)
	if url := u.ImageURL(); url != "" && len(url) < 120 {
		fmt.Fprintf(w, "  avatar: %s\n", url)
	}
}

func printHoax(w io.Writer, h models.Hoax) {
	fmt.Fprintf(w, "#%d %s (@%s) — %s\n", h.ID, h.User.DisplayName, h.User.Username, h.Time().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  %s\n", h.Content)
}

func printPageFooter[T any](w io.Writer, page models.Page[T]) {
	total := page.TotalPages
	if total == 0 {
		total = 1
	}
	fmt.Fprintf(w, "-- page %d of %d --\n", page.Number+1, total)
}
