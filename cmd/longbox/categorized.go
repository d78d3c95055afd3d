package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
)

func categorizedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categorized",
		Aliases: []string{"cat"},
		Short:   "Manage collected editions grouped by category",
	}
	cmd.AddCommand(catAddCmd())
	cmd.AddCommand(catUpdateCmd())
	cmd.AddCommand(catDeleteCmd())
	cmd.AddCommand(catSearchCmd())
	cmd.AddCommand(catFindCmd())
	cmd.AddCommand(catCategoriesCmd())
	return cmd
}

func addCatFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "title")
	cmd.Flags().StringP("writer", "w", "", "writer")
	cmd.Flags().StringP("artist", "a", "", "artist")
	cmd.Flags().String("collection", "", "collection or format, e.g. Omnibus")
	cmd.Flags().StringP("publisher", "p", "", "publisher")
	cmd.Flags().String("issues", "", "issues collected, e.g. 1-12")
	cmd.Flags().StringP("character", "m", "", "main character")
	cmd.Flags().BoolP("event", "e", false, "part of a crossover event")
	cmd.Flags().IntP("story-year", "y", 0, "year of the story")
	cmd.Flags().StringP("category", "k", "", "category label")
}

func catFields(cmd *cobra.Command) (longbox.CategorizedFields, error) {
	year, err := intFlag(cmd, "story-year")
	if err != nil {
		return longbox.CategorizedFields{}, err
	}
	return longbox.CategorizedFields{
		Title:         stringFlag(cmd, "title"),
		Writer:        stringFlag(cmd, "writer"),
		Artist:        stringFlag(cmd, "artist"),
		Collection:    stringFlag(cmd, "collection"),
		Publisher:     stringFlag(cmd, "publisher"),
		Issues:        stringFlag(cmd, "issues"),
		MainCharacter: stringFlag(cmd, "character"),
		IsEvent:       boolFlag(cmd, "event"),
		StoryYear:     year,
		Category:      stringFlag(cmd, "category"),
	}, nil
}

// catItem reads every attribute flag. Unset flags give zero values.
func catItem(cmd *cobra.Command) longbox.CategorizedItem {
	fl := cmd.Flags()
	item := longbox.CategorizedItem{}
	item.Title, _ = fl.GetString("title")
	item.Writer, _ = fl.GetString("writer")
	item.Artist, _ = fl.GetString("artist")
	item.Collection, _ = fl.GetString("collection")
	item.Publisher, _ = fl.GetString("publisher")
	item.Issues, _ = fl.GetString("issues")
	item.MainCharacter, _ = fl.GetString("character")
	item.IsEvent, _ = fl.GetBool("event")
	item.StoryYear, _ = fl.GetInt("story-year")
	item.Category, _ = fl.GetString("category")
	return item
}

func catAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a collected edition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := catItem(cmd)
			return withCollection(func(c *longbox.Collection) error {
				id, err := c.AddCategorized(item)
				if err != nil {
					return err
				}
				formatter.OutputEvent("added",
					fmt.Sprintf("Added %q as #%d", item.Title, id),
					map[string]any{"id": id})
				return nil
			})
		},
	}
	addCatFieldFlags(cmd)
	cmd.MarkFlagRequired("title")
	return cmd
}

func catUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every attribute of a collected edition",
		Long: `Replace every attribute of the edition with the given id. Omitted flags
reset the corresponding attribute to its zero value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			item := catItem(cmd)
			item.ID = id
			return withCollection(func(c *longbox.Collection) error {
				if err := c.UpdateCategorized(item); err != nil {
					return err
				}
				formatter.OutputEvent("updated", fmt.Sprintf("Updated #%d", id), map[string]any{"id": id})
				return nil
			})
		},
	}
	addCatFieldFlags(cmd)
	return cmd
}

func catDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a collected edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.DeleteCategorized(id); err != nil {
					return err
				}
				formatter.OutputEvent("deleted", fmt.Sprintf("Deleted #%d", id), map[string]any{"id": id})
				return nil
			})
		},
	}
}

func catSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List editions exactly matching every given field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catFields(cmd)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.SearchCategorized(f)
				if err != nil {
					return err
				}
				return formatter.OutputCategorized(items)
			})
		},
	}
	addCatFieldFlags(cmd)
	return cmd
}

func catFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List editions matching fields and a story year range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catFields(cmd)
			if err != nil {
				return err
			}
			crit := longbox.CategorizedCriteria{CategorizedFields: f}
			if crit.StoryYearRange, err = rangeFlag(cmd, "story-years"); err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.AdvancedSearchCategorized(crit)
				if err != nil {
					return err
				}
				return formatter.OutputCategorized(items)
			})
		},
	}
	addCatFieldFlags(cmd)
	cmd.Flags().String("story-years", "", "story year range, e.g. 1984-1986")
	return cmd
}

func catCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category labels in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCollection(func(c *longbox.Collection) error {
				cats, err := c.DistinctCategories()
				if err != nil {
					return err
				}
				return formatter.OutputCategories(cats)
			})
		},
	}
}
