package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
)

func sequencedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sequenced",
		Aliases: []string{"seq"},
		Short:   "Manage issues of a numbered series, keyed by issue and volume",
	}
	cmd.AddCommand(seqAddCmd())
	cmd.AddCommand(seqUpdateCmd())
	cmd.AddCommand(seqDeleteCmd())
	cmd.AddCommand(seqSearchCmd())
	cmd.AddCommand(seqFindCmd())
	cmd.AddCommand(seqMissingCmd())
	return cmd
}

func seqKeyArgs(args []string) (issue, vol int, err error) {
	if issue, err = parseIntArg("issue", args[0]); err != nil {
		return 0, 0, err
	}
	if vol, err = parseIntArg("volume", args[1]); err != nil {
		return 0, 0, err
	}
	return issue, vol, nil
}

// seqItem builds an item from the key arguments and the --story/--year flags.
func seqItem(cmd *cobra.Command, args []string) (longbox.SequencedItem, error) {
	issue, vol, err := seqKeyArgs(args)
	if err != nil {
		return longbox.SequencedItem{}, err
	}
	year, err := intFlag(cmd, "year")
	if err != nil {
		return longbox.SequencedItem{}, err
	}
	return longbox.SequencedItem{
		IssueNum:  issue,
		VolNum:    vol,
		MainStory: stringFlag(cmd, "story"),
		Year:      year,
	}, nil
}

func addSeqItemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("story", "s", "", "main story")
	cmd.Flags().IntP("year", "y", 0, "publication year")
}

func seqAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <issue> <volume>",
		Short: "Add an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := seqItem(cmd, args)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.AddSequenced(item); err != nil {
					return err
				}
				formatter.OutputEvent("added",
					fmt.Sprintf("Added issue %d (vol %d)", item.IssueNum, item.VolNum),
					map[string]any{"issue": item.IssueNum, "vol": item.VolNum})
				return nil
			})
		},
	}
	addSeqItemFlags(cmd)
	return cmd
}

func seqUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <issue> <volume>",
		Short: "Replace the story and year of an issue",
		Long: `Replace the story and year of the issue keyed by <issue> <volume>.
Omitted flags clear the corresponding value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := seqItem(cmd, args)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.UpdateSequenced(item); err != nil {
					return err
				}
				formatter.OutputEvent("updated",
					fmt.Sprintf("Updated issue %d (vol %d)", item.IssueNum, item.VolNum),
					map[string]any{"issue": item.IssueNum, "vol": item.VolNum})
				return nil
			})
		},
	}
	addSeqItemFlags(cmd)
	return cmd
}

func seqDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <issue> <volume>",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue, vol, err := seqKeyArgs(args)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.DeleteSequenced(issue, vol); err != nil {
					return err
				}
				formatter.OutputEvent("deleted",
					fmt.Sprintf("Deleted issue %d (vol %d)", issue, vol),
					map[string]any{"issue": issue, "vol": vol})
				return nil
			})
		},
	}
}

func addSeqFieldFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("issue", "i", 0, "issue number")
	cmd.Flags().IntP("vol", "v", 0, "volume number")
	cmd.Flags().StringP("story", "s", "", "main story")
	cmd.Flags().IntP("year", "y", 0, "publication year")
}

func seqFields(cmd *cobra.Command) (longbox.SequencedFields, error) {
	var f longbox.SequencedFields
	var err error
	if f.IssueNum, err = intFlag(cmd, "issue"); err != nil {
		return f, err
	}
	if f.VolNum, err = intFlag(cmd, "vol"); err != nil {
		return f, err
	}
	if f.Year, err = intFlag(cmd, "year"); err != nil {
		return f, err
	}
	f.MainStory = stringFlag(cmd, "story")
	return f, nil
}

// seqCriteria reads the field flags plus --years and --issues.
func seqCriteria(cmd *cobra.Command) (longbox.SequencedCriteria, error) {
	fields, err := seqFields(cmd)
	if err != nil {
		return longbox.SequencedCriteria{}, err
	}
	c := longbox.SequencedCriteria{SequencedFields: fields}
	if c.YearRange, err = rangeFlag(cmd, "years"); err != nil {
		return c, err
	}
	if c.IssueRange, err = rangeFlag(cmd, "issues"); err != nil {
		return c, err
	}
	return c, nil
}

func seqSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List issues exactly matching every given field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seqFields(cmd)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.SearchSequenced(f)
				if err != nil {
					return err
				}
				return formatter.OutputSequenced(items)
			})
		},
	}
	addSeqFieldFlags(cmd)
	return cmd
}

func seqFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List issues matching fields and inclusive ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := seqCriteria(cmd)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				items, err := c.AdvancedSearchSequenced(crit)
				if err != nil {
					return err
				}
				return formatter.OutputSequenced(items)
			})
		},
	}
	addSeqFieldFlags(cmd)
	cmd.Flags().String("years", "", "year range, e.g. 1985-1990")
	cmd.Flags().String("issues", "", "issue range, e.g. 1-50")
	return cmd
}

func seqMissingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing <start-end>",
		Short: "List issue numbers in a range that are not in the collection",
		Long: `List every issue number in the inclusive range <start-end> with no
matching issue. Field and range flags narrow which issues count as present,
e.g. --vol 2 finds the gaps in volume 2 only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := longbox.ParseRange("range", args[0])
			if err != nil {
				return err
			}
			crit, err := seqCriteria(cmd)
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				missing, err := c.FindMissingInRange(r.Start, r.End, crit)
				if err != nil {
					return err
				}
				return formatter.OutputMissing(r, missing)
			})
		},
	}
	addSeqFieldFlags(cmd)
	cmd.Flags().String("years", "", "year range, e.g. 1985-1990")
	cmd.Flags().String("issues", "", "issue range, e.g. 1-50")
	return cmd
}
