package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
	"github.com/matthewjhunter/longbox/internal/errs"
)

// Optional filters are read with Flags().Changed so that an explicit zero
// value, such as --event=false or --story "", still constrains a search.

func intFlag(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// rangeFlag parses a "start-end" string flag.
func rangeFlag(cmd *cobra.Command, name string) (*longbox.Range, error) {
	s := stringFlag(cmd, name)
	if s == nil {
		return nil, nil
	}
	r, err := longbox.ParseRange(name, *s)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func parseIntArg(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Invalid(field, s, "not a number")
	}
	return n, nil
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid("id", s, "must be a positive integer")
	}
	return id, nil
}
