package main

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/saltyorg/tutorials/internal/shell"
	"github.com/saltyorg/tutorials/internal/tutorial"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tutorials ordered by ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tutorials, err := current.store.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(tutorials) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tutorials found.")
				return nil
			}
			lo.ForEach(tutorials, func(t *tutorial.Tutorial, _ int) {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			})
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shell.ParseID(args[0])
			if err != nil {
				return err
			}
			t, err := current.store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var title, author, url, published string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tutorial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := mo.None[time.Time]()
			if published != "" {
				parsed, err := tutorial.ParseDate(published)
				if err != nil {
					return err
				}
				date = mo.Some(parsed)
			}

			added, err := current.store.Add(cmd.Context(), tutorial.New(title, author, url, date))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tutorial added successfully! ID: %d\n", added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Tutorial title")
	cmd.Flags().StringVar(&author, "author", "", "Tutorial author")
	cmd.Flags().StringVar(&url, "url", "", "Tutorial URL")
	cmd.Flags().StringVar(&published, "published", "", "Publish date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var title, author, url, published string
	var clearPublished bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a tutorial; flags that are not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shell.ParseID(args[0])
			if err != nil {
				return err
			}

			existing, err := current.store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				existing.Title = title
			}
			if flags.Changed("author") {
				existing.Author = author
			}
			if flags.Changed("url") {
				existing.URL = url
			}
			switch {
			case clearPublished:
				existing.ClearPublishedDate()
			case flags.Changed("published"):
				parsed, err := tutorial.ParseDate(published)
				if err != nil {
					return err
				}
				existing.SetPublishedDate(parsed)
			}

			if err := current.store.Update(cmd.Context(), existing); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tutorial updated successfully!")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&url, "url", "", "New URL")
	cmd.Flags().StringVar(&published, "published", "", "New publish date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearPublished, "clear-published", false, "Remove the publish date")
	cmd.MarkFlagsMutuallyExclusive("published", "clear-published")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shell.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := current.store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tutorial with ID %d deleted successfully!\n", id)
			return nil
		},
	}
}

func newMaintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Optimize and vacuum the database file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.db.Optimize(); err != nil {
				return err
			}
			if err := current.db.Vacuum(); err != nil {
				return err
			}
			count, err := current.db.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database maintenance complete (%d tutorials)\n", count)
			return nil
		},
	}
}
