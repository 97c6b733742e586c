package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/parkjy76/haruplan/plugin/nlparse"
	"github.com/parkjy76/haruplan/server/assistant"
)

const chatEventPreview = 8

var (
	removeCommandPattern = regexp.MustCompile(`^(\d+)\s*(번)?\s*` + nlparse.MarkerDelete + `$`)
	removeEnglishPattern = regexp.MustCompile(`^remove\s+(\d+)$`)
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive assistant session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, _, svc, closer, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closer()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "haruplan chat. Type Korean schedule sentences; 'help' for commands, 'quit' to exit.")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				switch {
				case line == "quit" || line == "exit" || strings.Contains(line, nlparse.MarkerExit):
					fmt.Fprintln(out, "Bye.")
					return nil
				case line == "help" || strings.Contains(line, nlparse.MarkerHelp):
					printChatHelp(out)
					continue
				case line == "list" || strings.Contains(line, nlparse.MarkerShow):
					if err := chatList(cmd, svc); err != nil {
						fmt.Fprintf(out, "list failed: %v\n", err)
					}
					continue
				case line == "memory" || line == "메모리":
					fmt.Fprintln(out, svc.Memory(ctx).Format())
					continue
				case line == "memory save":
					if err := svc.SaveMemory(ctx, svc.Memory(ctx)); err != nil {
						fmt.Fprintf(out, "memory save failed: %v\n", err)
						continue
					}
					fmt.Fprintln(out, "Memory saved.")
					continue
				case line == "memory load":
					fmt.Fprintln(out, "Memory loaded.")
					fmt.Fprintln(out, svc.Memory(ctx).Format())
					continue
				case line == "memory reset" || line == "메모리 초기화":
					if err := svc.ResetMemory(ctx); err != nil {
						fmt.Fprintf(out, "reset failed: %v\n", err)
						continue
					}
					fmt.Fprintln(out, "Memory and events cleared.")
					continue
				}

				m := removeCommandPattern.FindStringSubmatch(line)
				if m == nil {
					m = removeEnglishPattern.FindStringSubmatch(strings.ToLower(line))
				}
				if m != nil {
					id, _ := strconv.ParseInt(m[1], 10, 32)
					if err := svc.RemoveEvent(ctx, int32(id)); err != nil {
						fmt.Fprintf(out, "Event %d not found.\n", id)
					} else {
						fmt.Fprintf(out, "Removed event %d.\n", id)
					}
					continue
				}

				result, err := svc.Ask(ctx, line)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				if result.Merged != line {
					fmt.Fprintln(out, "(using memory)")
				}

				switch result.Intent {
				case assistant.IntentDaysLeft:
					fmt.Fprintln(out, result.Reply)
				case assistant.IntentUnknown:
					fmt.Fprintln(out, "Could not understand. Include a date, time, or study/exam wording.")
				case assistant.IntentStudyPlan:
					fmt.Fprintf(out, "Created a study plan with %d day(s).\n", len(result.Events))
					previewEvents(out, result, p.Location)
				case assistant.IntentExamPlan:
					if len(result.Events) == 0 {
						fmt.Fprintln(out, "Exam date missing or already passed.")
						continue
					}
					fmt.Fprintf(out, "Scheduled %d exam-countdown event(s).\n", len(result.Events))
					previewEvents(out, result, p.Location)
				default:
					if len(result.Events) == 0 {
						fmt.Fprintln(out, "No event found in that sentence.")
						continue
					}
					fmt.Fprintf(out, "Added %d event(s).\n", len(result.Events))
					previewEvents(out, result, p.Location)
				}
			}
		},
	}
}

func printChatHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  help / 도움말      show this help
  list / 보여줘      list stored events
  memory / 메모리    show conversational memory
  memory save       persist the current memory
  memory load       reload memory from storage
  memory reset      clear memory and events
  remove N / N 삭제  remove event N
  quit / 종료        exit

Anything else is treated as a schedule sentence, e.g.
  "20일 9시 면접, 1시 시험 있어"
  "토익 공부 10일 동안 하루 3시간"
  "수학 40 영어 30 국어 30, 9월 10일 시험까지 배분해줘"`)
}

func chatList(cmd *cobra.Command, svc *assistant.Service) error {
	events, err := svc.ListEvents(cmd.Context(), 0)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events.")
		return nil
	}
	p, err := loadProfile()
	loc := time.Local
	if err == nil {
		loc = p.Location
	}
	for _, ev := range events {
		when := time.Unix(ev.EventTs, 0).In(loc)
		fmt.Fprintf(out, "%3d | %s | %s\n", ev.ID, when.Format("2006-01-02 15:04"), ev.Title)
	}
	return nil
}

func previewEvents(out io.Writer, result *assistant.Result, loc *time.Location) {
	shown := result.Events
	if len(shown) > chatEventPreview {
		shown = shown[:chatEventPreview]
	}
	for _, ev := range shown {
		when := time.Unix(ev.EventTs, 0).In(loc)
		fmt.Fprintf(out, "  - %s | %s\n", when.Format("2006-01-02 15:04"), ev.Title)
	}
	if len(result.Events) > chatEventPreview {
		fmt.Fprintf(out, "  ... and %d more.\n", len(result.Events)-chatEventPreview)
	}
}
