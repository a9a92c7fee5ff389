package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/ui"
)

// movieFlags are the form inputs shared by add and edit.
type movieFlags struct {
	Title       string `help:"Movie title."`
	Director    string `help:"Director."`
	Genre       string `help:"Genre."`
	ReleaseYear string `name:"release-year" help:"Release year."`
	Rating      string `help:"Rating, e.g. 7.5."`
	ImageURL    string `name:"image-url" help:"Poster image URL."`
}

// apply copies every non-empty flag into the model's form.
func (f movieFlags) apply(m *ui.Model) {
	for name, value := range map[string]string{
		"title":        f.Title,
		"director":     f.Director,
		"genre":        f.Genre,
		"release_year": f.ReleaseYear,
		"rating":       f.Rating,
		"image_url":    f.ImageURL,
	} {
		if value != "" {
			m.SetField(name, value)
		}
	}
}

type listCmd struct{}

func (cmd *listCmd) Run(s *session) error {
	m := ui.New(s.api, s.prompt())

	err := m.Mount(s.ctx)
	if err != nil {
		return stateError(m, err)
	}

	printMovies(s.out, m.Movies())
	return nil
}

type addCmd struct {
	Fields movieFlags `embed:""`
}

func (cmd *addCmd) Run(s *session) error {
	m := ui.New(s.api, s.prompt())
	cmd.Fields.apply(m)

	err := m.Submit(s.ctx)
	if err != nil {
		return stateError(m, err)
	}

	fmt.Fprintln(s.out, "Movie added.")
	printMovies(s.out, m.Movies())
	return nil
}

type editCmd struct {
	ID         int64      `arg:"" help:"Id of the movie to edit."`
	Fields     movieFlags `embed:""`
	ClearImage bool       `name:"clear-image" help:"Remove the poster image URL."`
}

func (cmd *editCmd) Run(s *session) error {
	m := ui.New(s.api, s.prompt())

	err := m.Mount(s.ctx)
	if err != nil {
		return stateError(m, err)
	}

	movie, ok := findMovie(m.Movies(), cmd.ID)
	if !ok {
		return fmt.Errorf("movie %d not found", cmd.ID)
	}

	m.Edit(movie)
	cmd.Fields.apply(m)

	// Empty flags keep the stored value, so clearing needs its own switch.
	if cmd.ClearImage {
		m.SetField("image_url", "")
	}

	err = m.Submit(s.ctx)
	if err != nil {
		return stateError(m, err)
	}

	fmt.Fprintln(s.out, "Movie updated.")
	printMovies(s.out, m.Movies())
	return nil
}

type deleteCmd struct {
	ID  int64 `arg:"" help:"Id of the movie to delete."`
	Yes bool  `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *deleteCmd) Run(s *session) error {
	var confirmed bool

	confirm := s.prompt()
	if cmd.Yes {
		confirm = ui.ConfirmFunc(func(string) bool { return true })
	}

	m := ui.New(s.api, ui.ConfirmFunc(func(prompt string) bool {
		confirmed = confirm.Confirm(prompt)
		return confirmed
	}))

	err := m.Delete(s.ctx, cmd.ID)
	if err != nil {
		return stateError(m, err)
	}

	if !confirmed {
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	fmt.Fprintln(s.out, "Movie deleted.")
	printMovies(s.out, m.Movies())
	return nil
}

// prompt asks on the session's output and reads a y/N answer from its input.
// Anything but y or yes, including end of input, declines.
func (s *session) prompt() ui.Confirmer {
	return ui.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(s.out, "%s [y/N] ", prompt)

		line, _ := s.in.ReadString('\n')

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

// stateError pairs the message the model shows with the underlying cause.
func stateError(m *ui.Model, err error) error {
	if msg := m.State().Message; msg != "" && msg != err.Error() {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

func findMovie(movies []data.Movie, id int64) (data.Movie, bool) {
	for _, movie := range movies {
		if movie.ID == id {
			return movie, true
		}
	}
	return data.Movie{}, false
}

func printMovies(out io.Writer, movies []data.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDIRECTOR\tGENRE\tYEAR\tRATING\tIMAGE")

	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, str(m.Title), str(m.Director), str(m.Genre), year(m.ReleaseYear), rating(m.Rating), str(m.ImageURL))
	}

	tw.Flush()
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func year(y *data.Year) string {
	if y == nil {
		return "-"
	}
	return strconv.Itoa(int(*y))
}

func rating(r *data.Rating) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(float64(*r), 'f', 1, 64)
}
