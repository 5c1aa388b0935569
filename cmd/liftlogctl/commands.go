package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/workouts"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				if err := db.Migrate(cmd.Context(), pool); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}

func newExercisesCmd(opts *rootOptions) *cobra.Command {
	var (
		userID        string
		mainLiftsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the distinct exercises a user has logged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				service := workouts.NewService(workouts.NewRepo(pool), nil, nil)
				exercises, err := service.Exercises(cmd.Context(), userID, mainLiftsOnly)
				if err != nil {
					return err
				}
				for _, exercise := range exercises {
					fmt.Fprintln(cmd.OutOrStdout(), exercise)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().BoolVar(&mainLiftsOnly, "main-lifts", false, "only squat, bench and deadlift variations")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newE1RMCmd(opts *rootOptions) *cobra.Command {
	var userID, exercise string

	cmd := &cobra.Command{
		Use:   "e1rm",
		Short: "Print the best estimated one rep max per day for an exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				service := workouts.NewService(workouts.NewRepo(pool), nil, nil)
				points, err := service.E1RMSeries(cmd.Context(), userID, exercise)
				if err != nil {
					return err
				}
				return printSeries(cmd, points)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().StringVar(&exercise, "exercise", "", "exact exercise name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("exercise")

	return cmd
}

func printSeries(cmd *cobra.Command, points []workouts.E1RMPoint) error {
	if len(points) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no data")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tE1RM (KG)")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\n", p.Date, strconv.FormatFloat(p.E1RM, 'f', 1, 64))
	}
	return tw.Flush()
}
