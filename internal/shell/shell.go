// Package shell implements the interactive tutorial menu. It is a thin
// caller of the tutorial store: it gathers input, builds records, and prints
// results or errors without ever leaving the loop on a failed operation.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/saltyorg/tutorials/internal/database"
	"github.com/saltyorg/tutorials/internal/tutorial"
)

// Store is the set of tutorial operations the shell needs
type Store interface {
	Add(ctx context.Context, t *tutorial.Tutorial) (*tutorial.Tutorial, error)
	GetByID(ctx context.Context, id int64) (*tutorial.Tutorial, error)
	GetAll(ctx context.Context) ([]*tutorial.Tutorial, error)
	Update(ctx context.Context, t *tutorial.Tutorial) error
	Delete(ctx context.Context, id int64) error
}

var _ Store = (*database.TutorialStore)(nil)

// ClearDateInput clears the published date when entered at the update prompt.
const ClearDateInput = "-"

var errInvalidInput = errors.New("invalid input")

const (
	choiceExit = iota
	choiceAdd
	choiceList
	choiceView
	choiceUpdate
	choiceDelete
)

// Shell runs the menu loop over the given input and output streams
type Shell struct {
	store  Store
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// New creates a shell. errOut receives error messages; it may be the same writer as out.
func New(store Store, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.displayMenu()
		line, err := s.readLine()
		if err != nil {
			fmt.Fprintln(s.out)
			return nil
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(s.errOut, "Invalid input. Please enter a number.")
		} else if choice == choiceExit {
			fmt.Fprintln(s.out, "Exiting Tutorial Management System. Goodbye!")
			return nil
		} else if err := s.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			s.report(err)
		}

		fmt.Fprint(s.out, "\nPress Enter to continue...")
		if _, err := s.readLine(); err != nil {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}

func (s *Shell) displayMenu() {
	fmt.Fprintln(s.out, "\n--- Tutorial Management System ---")
	fmt.Fprintln(s.out, "1. Add New Tutorial")
	fmt.Fprintln(s.out, "2. View All Tutorials")
	fmt.Fprintln(s.out, "3. View Tutorial by ID")
	fmt.Fprintln(s.out, "4. Update Tutorial")
	fmt.Fprintln(s.out, "5. Delete Tutorial")
	fmt.Fprintln(s.out, "0. Exit")
	fmt.Fprint(s.out, "Enter your choice: ")
}

func (s *Shell) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case choiceAdd:
		return s.addTutorial(ctx)
	case choiceList:
		return s.viewAllTutorials(ctx)
	case choiceView:
		return s.viewTutorialByID(ctx)
	case choiceUpdate:
		return s.updateTutorial(ctx)
	case choiceDelete:
		return s.deleteTutorial(ctx)
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		return nil
	}
}

// report prints err in the form matching its kind
func (s *Shell) report(err error) {
	switch database.KindOf(err) {
	case database.KindNotFound:
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	case database.KindOperationFailed:
		log.Debug().Err(errors.Unwrap(err)).Msg("Store operation failed")
		fmt.Fprintf(s.errOut, "Database Error: %v\n", err)
	default:
		if errors.Is(err, errInvalidInput) {
			fmt.Fprintln(s.errOut, "Invalid input. Please enter the correct data type.")
			return
		}
		log.Error().Err(err).Msg("Unexpected shell error")
		fmt.Fprintf(s.errOut, "An unexpected error occurred: %v\n", err)
	}
}

func (s *Shell) addTutorial(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- Add New Tutorial ---")

	title, err := s.prompt("Enter Title: ")
	if err != nil {
		return err
	}
	author, err := s.prompt("Enter Author: ")
	if err != nil {
		return err
	}
	url, err := s.prompt("Enter URL: ")
	if err != nil {
		return err
	}
	dateStr, err := s.prompt("Enter Published Date (YYYY-MM-DD, leave blank if unknown): ")
	if err != nil {
		return err
	}

	published := mo.None[time.Time]()
	if strings.TrimSpace(dateStr) != "" {
		if date, err := tutorial.ParseDate(dateStr); err != nil {
			fmt.Fprintln(s.errOut, "Invalid date format. Date will be set to null.")
		} else {
			published = mo.Some(date)
		}
	}

	added, err := s.store.Add(ctx, tutorial.New(title, author, url, published))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Tutorial added successfully! ID: %d\n", added.ID)
	return nil
}

func (s *Shell) viewAllTutorials(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- All Tutorials ---")

	tutorials, err := s.store.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(tutorials) == 0 {
		fmt.Fprintln(s.out, "No tutorials found.")
		return nil
	}

	lines := lo.Map(tutorials, func(t *tutorial.Tutorial, _ int) string {
		return t.String()
	})
	fmt.Fprintln(s.out, strings.Join(lines, "\n"))
	return nil
}

func (s *Shell) viewTutorialByID(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- View Tutorial by ID ---")

	id, err := s.promptID("Enter Tutorial ID: ")
	if err != nil {
		return err
	}

	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Found Tutorial: %s\n", t)
	return nil
}

func (s *Shell) updateTutorial(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- Update Tutorial ---")

	id, err := s.promptID("Enter Tutorial ID to update: ")
	if err != nil {
		return err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Existing Tutorial: %s\n", existing)

	if err := s.promptKeep("Title", &existing.Title); err != nil {
		return err
	}
	if err := s.promptKeep("Author", &existing.Author); err != nil {
		return err
	}
	if err := s.promptKeep("URL", &existing.URL); err != nil {
		return err
	}

	current := tutorial.FormatDate(existing.PublishedDate)
	if current == "" {
		current = "null"
	}
	dateStr, err := s.prompt(fmt.Sprintf(
		"Enter New Published Date (YYYY-MM-DD, %q to clear, leave blank to keep current: %s): ",
		ClearDateInput, current))
	if err != nil {
		return err
	}
	switch trimmed := strings.TrimSpace(dateStr); trimmed {
	case "":
	case ClearDateInput:
		existing.ClearPublishedDate()
	default:
		if date, err := tutorial.ParseDate(trimmed); err != nil {
			fmt.Fprintln(s.errOut, "Invalid date format. Keeping current date.")
		} else {
			existing.SetPublishedDate(date)
		}
	}

	if err := s.store.Update(ctx, existing); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Tutorial updated successfully!")
	return nil
}

func (s *Shell) deleteTutorial(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- Delete Tutorial ---")

	id, err := s.promptID("Enter Tutorial ID to delete: ")
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Tutorial with ID %d deleted successfully!\n", id)
	return nil
}

// promptKeep overwrites *field with the entered text unless it is blank
func (s *Shell) promptKeep(label string, field *string) error {
	input, err := s.prompt(fmt.Sprintf("Enter New %s (leave blank to keep current: '%s'): ", label, *field))
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) != "" {
		*field = input
	}
	return nil
}

func (s *Shell) promptID(label string) (int64, error) {
	input, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	return ParseID(input)
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned as-is; io.EOF is only returned once input is exhausted.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseID parses a tutorial ID typed by the user.
func ParseID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a tutorial ID", errInvalidInput, input)
	}
	return id, nil
}
