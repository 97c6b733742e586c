// haruplan is a natural-language Korean schedule assistant: sentences
// in, calendar events and alerts out.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parkjy76/haruplan/internal/profile"
	"github.com/parkjy76/haruplan/server/assistant"
	"github.com/parkjy76/haruplan/server/notifier"
	"github.com/parkjy76/haruplan/store"
	"github.com/parkjy76/haruplan/store/db"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:          "haruplan",
	Short:        "Natural-language Korean schedule assistant",
	Long:         `haruplan turns sentences like "20일 9시 면접, 1시 시험" into stored calendar events, study plans, and exam countdowns, and alerts you when they come due.`,
	SilenceUsage: true,
}

func init() {
	viper.SetEnvPrefix("haruplan")
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `Mode of the assistant: "prod" or "dev"`)
	flags.String("addr", "127.0.0.1", "Binding address for the HTTP server")
	flags.Int("port", 8230, "Binding port for the HTTP server")
	flags.String("data", "", "Data directory (default ~/.haruplan)")
	flags.String("driver", "sqlite", `Database driver: "sqlite" or "postgres"`)
	flags.String("dsn", "", "Database source name")
	flags.String("timezone", "Asia/Seoul", "IANA timezone events are anchored in")

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "timezone"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newAddCmd(), newAskCmd(), newChatCmd(), newListCmd(),
		newRemoveCmd(), newServeCmd(), newNotifyTestCmd())
}

// loadProfile assembles configuration from flags, HARUPLAN_* env, and
// defaults, in that order of precedence.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:     viper.GetString("mode"),
		Addr:     viper.GetString("addr"),
		Port:     viper.GetInt("port"),
		Data:     viper.GetString("data"),
		Driver:   viper.GetString("driver"),
		DSN:      viper.GetString("dsn"),
		Timezone: viper.GetString("timezone"),
		Version:  version,
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// openService builds the store and assistant service; the returned
// closer shuts the database down.
func openService(ctx context.Context) (*profile.Profile, *store.Store, *assistant.Service, func(), error) {
	p, err := loadProfile()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := driver.Migrate(ctx); err != nil {
		driver.Close()
		return nil, nil, nil, nil, err
	}

	st := store.New(driver, p)
	logger := newLogger(p)
	svc := assistant.NewService(st, p.Location, logger)
	return p, st, svc, func() { _ = st.Close() }, nil
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add events from Korean schedule text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, svc, closer, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closer()

			result, err := svc.Ask(ctx, args[0])
			if err != nil {
				return err
			}
			if len(result.Events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Could not parse events. Try a more explicit sentence.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d event(s).\n", len(result.Events))
			printEvents(cmd, result.Events, len(result.Events))
			return nil
		},
	}
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text>",
		Short: "One-line assistant command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, svc, closer, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closer()

			result, err := svc.Ask(ctx, args[0])
			if err != nil {
				return err
			}
			switch result.Intent {
			case assistant.IntentDaysLeft:
				fmt.Fprintln(cmd.OutOrStdout(), result.Reply)
			case assistant.IntentUnknown:
				fmt.Fprintln(cmd.OutOrStdout(), "Could not understand request. Try schedule/study/exam-plan wording.")
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d event(s).\n", intentLabel(result.Intent), len(result.Events))
				printEvents(cmd, result.Events, 20)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, _, svc, closer, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closer()

			events, err := svc.ListEvents(ctx, 0)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events.")
				return nil
			}
			for _, ev := range events {
				state := "pending"
				if ev.Notified {
					state = "notified"
				}
				when := time.Unix(ev.EventTs, 0).In(p.Location)
				fmt.Fprintf(cmd.OutOrStdout(), "%3d | %s | %s | %s\n",
					ev.ID, when.Format("2006-01-02 15:04"), ev.Title, state)
			}
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			ctx := cmd.Context()
			_, _, svc, closer, oerr := openService(ctx)
			if oerr != nil {
				return oerr
			}
			defer closer()

			if err := svc.RemoveEvent(ctx, int32(id)); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Event not found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
}

func newNotifyTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify-test",
		Short: "Send a test notification over every configured channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile()
			if err != nil {
				return err
			}
			senders := notifier.SendersFromProfile(p, cmd.OutOrStdout())
			for _, sender := range senders {
				if err := sender.Send(cmd.Context(), "haruplan test", "Test notification"); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: failed (%v)\n", sender.Name(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: sent\n", sender.Name())
			}
			return nil
		},
	}
}

func intentLabel(intent assistant.Intent) string {
	switch intent {
	case assistant.IntentSchedule:
		return "Added schedule"
	case assistant.IntentStudyPlan:
		return "Created study plan"
	case assistant.IntentExamPlan:
		return "Created exam countdown plan"
	default:
		return "Saved"
	}
}

func printEvents(cmd *cobra.Command, events []*store.Event, limit int) {
	p, err := loadProfile()
	loc := time.Local
	if err == nil {
		loc = p.Location
	}
	shown := events
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, ev := range shown {
		when := time.Unix(ev.EventTs, 0).In(loc)
		fmt.Fprintf(cmd.OutOrStdout(), "- %s | %s\n", when.Format("2006-01-02 15:04"), ev.Title)
	}
	if len(events) > limit {
		fmt.Fprintf(cmd.OutOrStdout(), "... and %d more.\n", len(events)-limit)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
