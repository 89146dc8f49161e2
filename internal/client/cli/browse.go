package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hoaxify/hoaxify-cli/internal/client/pager"
)

// browse runs the interactive pagination loop shared by the user list
// and the hoax feeds: render the current page, then accept
// next/previous/quit until the user leaves.
func browse[T any](ctx context.Context, a *App, p *pager.Pager[T], render func(io.Writer, T)) error {
	if err := p.Load(ctx, 0); err != nil {
		printErr(a.out, err)
		return nil
	}

	for {
		page := p.Page()
		if len(page.Content) == 0 {
			fmt.Fprintln(a.out, "Nothing to show.")
		}
		for _, item := range page.Content {
			render(a.out, item)
		}
		printPageFooter(a.out, page)

		if page.First && page.Last {
			return nil
		}

		choice, err := getSimpleText(a.reader, "(n)ext, (p)revious, (q)uit", a.out)
		if err != nil {
			return err
		}
		switch choice {
		case "n", "next":
			if p.Page().Last {
				fmt.Fprintln(a.out, "Already on the last page.")
				continue
			}
			if err := p.Next(ctx); err != nil {
				printErr(a.out, err)
			}
		case "p", "prev", "previous":
			if p.Page().First {
				fmt.Fprintln(a.out, "Already on the first page.")
				continue
			}
			if err := p.Previous(ctx); err != nil {
				printErr(a.out, err)
			}
		case "q", "quit", "":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown choice:", choice)
		}
	}
}
