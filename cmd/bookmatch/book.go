package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

func newBookCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the catalog",
	}

	cmd.AddCommand(newBookAddCmd(opts))
	cmd.AddCommand(newBookEditCmd(opts))
	cmd.AddCommand(newBookRemoveCmd(opts))
	cmd.AddCommand(newBookListCmd(opts))

	return cmd
}

// bookFields are the flags shared by book add and book edit.
type bookFields struct {
	title       string
	author      string
	year        int
	publisher   string
	genre       string
	description string
	rating      float64
	tags        []string
}

func (f *bookFields) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "Title")
	flags.StringVar(&f.author, "author", "", "Author")
	flags.IntVar(&f.year, "year", 0, "Publication year")
	flags.StringVar(&f.publisher, "publisher", "", "Publisher")
	flags.StringVar(&f.genre, "genre", "", "Genre")
	flags.StringVar(&f.description, "description", "", "Description")
	flags.Float64Var(&f.rating, "rating", 0, "Rating from 0 to 5")
	flags.StringSliceVar(&f.tags, "tags", nil, "Comma separated tags")
}

func newBookAddCmd(opts *rootOptions) *cobra.Command {
	var fields bookFields

	cmd := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			book, err := lib.AddBook(cmd.Context(), catalog.Book{
				ISBN:        args[0],
				Title:       fields.title,
				Author:      fields.author,
				Year:        fields.year,
				Publisher:   fields.publisher,
				Genre:       fields.genre,
				Description: fields.description,
				Rating:      fields.rating,
				Tags:        fields.tags,
			})
			if err != nil {
				return fmt.Errorf("failed to add book: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", book.ISBN, displayTitle(book.Title))
			return nil
		},
	}

	fields.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newBookEditCmd(opts *rootOptions) *cobra.Command {
	var (
		fields     bookFields
		addTags    []string
		removeTags []string
	)

	cmd := &cobra.Command{
		Use:   "edit <isbn>",
		Short: "Change fields of a book",
		Long: `Change fields of a book. Only the flags given are applied.

--tags replaces the tag set; --add-tag and --remove-tag apply after it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			var edit usecase.BookEdit
			if flags.Changed("title") {
				edit.Title = &fields.title
			}
			if flags.Changed("author") {
				edit.Author = &fields.author
			}
			if flags.Changed("year") {
				edit.Year = &fields.year
			}
			if flags.Changed("publisher") {
				edit.Publisher = &fields.publisher
			}
			if flags.Changed("genre") {
				edit.Genre = &fields.genre
			}
			if flags.Changed("description") {
				edit.Description = &fields.description
			}
			if flags.Changed("rating") {
				edit.Rating = &fields.rating
			}
			if flags.Changed("tags") {
				edit.Tags = &fields.tags
			}
			edit.AddTags = addTags
			edit.RemoveTags = removeTags

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			book, err := lib.EditBook(cmd.Context(), args[0], edit)
			if err != nil {
				return fmt.Errorf("failed to edit book: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", book.ISBN, displayTitle(book.Title))
			return nil
		},
	}

	fields.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&addTags, "add-tag", nil, "Add a tag (repeatable)")
	cmd.Flags().StringArrayVar(&removeTags, "remove-tag", nil, "Remove a tag (repeatable)")

	return cmd
}

func newBookRemoveCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <isbn>",
		Aliases: []string{"delete"},
		Short:   "Remove a book from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn := args[0]
			out := cmd.OutOrStdout()

			if !force {
				ok, err := confirm(cmd, opts, fmt.Sprintf("Remove book '%s' from the catalog?", isbn))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Deletion cancelled")
					return nil
				}
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			removed, err := lib.RemoveBook(cmd.Context(), isbn)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("book not found: %s", isbn)
			}

			fmt.Fprintf(out, "Removed %s\n", isbn)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove without confirmation")

	return cmd
}

func newBookListCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			books := lib.Books()
			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), books)
			}
			renderBookList(cmd.OutOrStdout(), books)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}
