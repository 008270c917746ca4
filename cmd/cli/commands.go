package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhyrak/course-planner/internal/app"
	"github.com/rhyrak/course-planner/internal/config"
	"github.com/rhyrak/course-planner/internal/csvio"
	"github.com/rhyrak/course-planner/internal/logging"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/pkg/model"
)

var ErrInvalidCart = errors.New("cart is not valid")

type cli struct {
	configPath string
	student    string
	app        *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan a course cart: clashes, recommendations, bids and deadlines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $CP_CONFIG or ./config.yaml)")
	root.PersistentFlags().StringVarP(&c.student, "student", "s", "default", "cart owner")

	root.AddCommand(
		c.clashesCmd(),
		c.recommendCmd(),
		c.bidCmd(),
		c.deadlinesCmd(),
		c.cartCmd(),
		c.exportCmd(),
	)
	return root
}

// run opens the planner for the duration of one command.
func (c *cli) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		logging.Init(cfg.LoggingConfig())

		c.app, err = app.Open(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := c.app.Close(); err != nil {
				logging.Warn().Err(err).Msg("failed to close store")
			}
		}()
		return fn(cmd, args)
	}
}

// courses resolves ids against the catalog, or returns the cart when no ids
// are given.
func (c *cli) courses(ctx context.Context, ids []string) ([]*model.Course, error) {
	if len(ids) > 0 {
		return c.app.Catalog.Resolve(ids)
	}
	return c.app.Cart(ctx, c.student)
}

func (c *cli) clashesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clashes [course-id...]",
		Short: "Report schedule clashes in the cart or among the given courses",
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			courses, err := c.courses(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			clashes := planner.DetectClashes(courses)
			if len(clashes) == 0 {
				fmt.Fprintln(out, "No clashes.")
				return nil
			}
			for _, cl := range clashes {
				fmt.Fprintf(out, "%-10s <-> %-10s %-10s %s / %s\n", cl.Course1ID, cl.Course2ID, cl.Day, cl.Slot1.TimeRange, cl.Slot2.TimeRange)
			}
			fmt.Fprintf(out, "Clashes: %d\n", len(clashes))
			return nil
		}),
	}
}

func (c *cli) recommendCmd() *cobra.Command {
	var (
		interests   []string
		goals       []string
		constraints []string
		priorities  model.Priorities
		exportPath  string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank catalog courses against your interests, goals and constraints",
		Long: `Rank catalog courses against your interests, goals and constraints.
Without selection flags the preferences of the previous run are reused.`,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			prefs, err := c.app.SavedPreferences(ctx, c.student)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("interest") || flags.Changed("goal") || flags.Changed("constraint") {
				prefs.Interests, prefs.Goals, prefs.Constraints = interests, goals, constraints
			}
			if flags.Changed("academic") {
				prefs.Priorities.Academic = priorities.Academic
			}
			if flags.Changed("career") {
				prefs.Priorities.Career = priorities.Career
			}
			if flags.Changed("balance") {
				prefs.Priorities.Balance = priorities.Balance
			}

			recs, err := c.app.Recommend(ctx, c.student, prefs)
			if err != nil {
				return err
			}
			printRecommendations(cmd, recs)
			if exportPath != "" {
				if err := csvio.ExportRecommendations(recs, exportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportPath)
			}
			return nil
		}),
	}
	f := cmd.Flags()
	f.StringSliceVarP(&interests, "interest", "i", nil, "interest (programming, data-analytics, ai, cybersecurity, web, finance, design)")
	f.StringSliceVarP(&goals, "goal", "g", nil, "goal (maximize-gpa, build-skills, minimize-workload, best-professors)")
	f.StringSliceVarP(&constraints, "constraint", "c", nil, "constraint (su-eligible, project-based, low-competition)")
	f.IntVar(&priorities.Academic, "academic", 50, "academic priority, 0-100")
	f.IntVar(&priorities.Career, "career", 50, "career priority, 0-100")
	f.IntVar(&priorities.Balance, "balance", 50, "balance priority, 0-100")
	f.StringVarP(&exportPath, "export", "o", "", "also write the ranking to this csv file")
	return cmd
}

func printRecommendations(cmd *cobra.Command, recs []model.Recommendation) {
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations.")
		return
	}
	for i, r := range recs {
		fmt.Fprintf(out, "%2d. %-10s %6.1f  %s\n", i+1, r.CourseID, r.Score, strings.Join(r.Reasons, "; "))
	}
}

func (c *cli) bidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bid course-id...",
		Short: "Estimate bids for the next round",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			courses, err := c.app.Catalog.Resolve(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, course := range courses {
				est := planner.EstimateBid(course)
				fmt.Fprintf(out, "%-10s min %4d  recommended %4d  max %4d  fill %3.0f%%\n",
					est.CourseID, est.Min, est.Recommended, est.Max, est.FillRate*100)
			}
			return nil
		}),
	}
}

func (c *cli) deadlinesCmd() *cobra.Command {
	var (
		from string
		days int
	)
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List upcoming assessment deadlines of the cart",
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			start := time.Now().UTC()
			if from != "" {
				t, err := time.Parse(planner.DateLayout, from)
				if err != nil {
					return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
				}
				start = t
			}
			window := time.Duration(days) * 24 * time.Hour

			deadlines, busy, err := c.app.Deadlines(cmd.Context(), c.student, start, window)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(deadlines) == 0 {
				fmt.Fprintln(out, "No upcoming deadlines.")
				return nil
			}
			for _, d := range deadlines {
				holiday := ""
				if d.OnHoliday {
					holiday = " (holiday)"
				}
				fmt.Fprintf(out, "%s %-10s %-12s %s%s\n", d.Due.Format(planner.DateLayout), d.CourseID, d.Assessment.Type, d.Assessment.Title, holiday)
			}
			if len(busy) > 0 {
				fmt.Fprintf(out, "Busy weeks: %s\n", strings.Join(busy, ", "))
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&days, "days", 0, "window length in days (default from configuration)")
	return cmd
}

func (c *cli) cartCmd() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Manage the course cart",
	}

	addCmd := &cobra.Command{
		Use:   "add course-id...",
		Short: "Add courses to the cart",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := c.app.AddToCart(cmd.Context(), c.student, id); err != nil {
					return fmt.Errorf("add %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", id)
			}
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:     "remove course-id...",
		Aliases: []string{"rm"},
		Short:   "Remove courses from the cart",
		Args:    cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := c.app.Carts.Remove(cmd.Context(), c.student, id); err != nil {
					return fmt.Errorf("remove %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			}
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			return c.app.Carts.Clear(cmd.Context(), c.student)
		}),
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the cart as a weekly timetable",
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			courses, err := c.app.Cart(cmd.Context(), c.student)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			csvio.PrintTimetable(out, planner.Timetable(courses))
			s := planner.Summarize(courses)
			fmt.Fprintf(out, "Courses: %d  Credits: %.1f  S/U eligible: %d  Clashes: %d  Weekly hours: %.1f\n",
				s.Courses, s.TotalCredits, s.SUEligible, s.Clashes, float64(s.WeeklyMinutes)/60)
			return nil
		}),
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the cart for clashes, missing prerequisites and the credit limit",
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			courses, err := c.app.Cart(cmd.Context(), c.student)
			if err != nil {
				return err
			}
			valid, report := planner.Validate(courses, c.app.Config.Planning.MaxCredits)
			fmt.Fprint(cmd.OutOrStdout(), report)
			if !valid {
				return ErrInvalidCart
			}
			return nil
		}),
	}

	cart.AddCommand(addCmd, removeCmd, clearCmd, listCmd, validateCmd)
	return cart
}

func (c *cli) exportCmd() *cobra.Command {
	var clashesPath, recommendationsPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write cart clashes and saved-preference recommendations to csv",
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			courses, err := c.app.Cart(ctx, c.student)
			if err != nil {
				return err
			}
			if err := csvio.ExportClashes(planner.DetectClashes(courses), clashesPath); err != nil {
				return err
			}

			prefs, err := c.app.SavedPreferences(ctx, c.student)
			if err != nil {
				return err
			}
			recs, err := c.app.Recommend(ctx, c.student, prefs)
			if err != nil {
				return err
			}
			if err := csvio.ExportRecommendations(recs, recommendationsPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s and %s\n", clashesPath, recommendationsPath)
			return nil
		}),
	}
	cmd.Flags().StringVar(&clashesPath, "clashes", "clashes.csv", "clash report path")
	cmd.Flags().StringVar(&recommendationsPath, "recommendations", planner.NewDefaultConfiguration().ExportFile, "recommendation report path")
	return cmd
}
