package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
)

func narrativeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "narrative",
		Aliases: []string{"log"},
		Short:   "Manage the story log of loosely ordered series",
	}
	cmd.AddCommand(narAddCmd())
	cmd.AddCommand(narUpdateCmd())
	cmd.AddCommand(narDeleteCmd())
	cmd.AddCommand(narSearchCmd())
	cmd.AddCommand(narFindCmd())
	return cmd
}

func addNarFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("story", "s", "", "story name")
	cmd.Flags().StringP("series", "r", "", "series name")
	cmd.Flags().IntP("year", "y", 0, "year")
}

func narFields(cmd *cobra.Command) (longbox.NarrativeFields, error) {
	year, err := intFlag(cmd, "year")
	if err != nil {
		return longbox.NarrativeFields{}, err
	}
	return longbox.NarrativeFields{
		StoryName:  stringFlag(cmd, "story"),
		SeriesName: stringFlag(cmd, "series"),
		Year:       year,
	}, nil
}

func narItem(cmd *cobra.Command) longbox.NarrativeLogItem {
	fl := cmd.Flags()
	item := longbox.NarrativeLogItem{}
	item.StoryName, _ = fl.GetString("story")
	item.SeriesName, _ = fl.GetString("series")
	item.Year, _ = fl.GetInt("year")
	return item
}

func narAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := narItem(cmd)
			return withCollection(func(c *longbox.Collection) error {
				id, err := c.AddNarrative(item)
				if err != nil {
					return err
				}
				formatter.OutputEvent("added",
					fmt.Sprintf("Added %q as #%d", item.StoryName, id),
					map[string]any{"id": id})
				return nil
			})
		},
	}
	addNarFieldFlags(cmd)
	cmd.MarkFlagRequired("story")
	return cmd
}

func narUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every attribute of a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			item := narItem(cmd)
			item.ID = id
			return withCollection(func(c *longbox.Collection) error {
				if err := c.UpdateNarrative(item); err != nil {
					return err
				}
				formatter.OutputEvent("updated", fmt.Sprintf("Updated #%d", id), map[string]any{"id": id})
				return nil
			})
		},
	}
	addNarFieldFlags(cmd)
	return cmd
}

func narDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.DeleteNarrative(id); err != nil {
					return err
				}
				formatter.OutputEvent("deleted", fmt.Sprintf("Deleted #%d", id), map[string]any{"id": id})
				return nil
			})
		},
	}
}

func narSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List stories exactly matching every given field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := narFields(cmd)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.SearchNarrative(f)
				if err != nil {
					return err
				}
				return formatter.OutputNarrative(items)
			})
		},
	}
	addNarFieldFlags(cmd)
	return cmd
}

func narFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List stories matching fields and a year range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := narFields(cmd)
			if err != nil {
				return err
			}
			crit := longbox.NarrativeCriteria{NarrativeFields: f}
			if crit.YearRange, err = rangeFlag(cmd, "years"); err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.AdvancedSearchNarrative(crit)
				if err != nil {
					return err
				}
				return formatter.OutputNarrative(items)
			})
		},
	}
	addNarFieldFlags(cmd)
	cmd.Flags().String("years", "", "year range, e.g. 1990-1995")
	return cmd
}
