package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-helper/api/internal/progress"
	"study-helper/api/internal/report"
	"study-helper/api/internal/store"
)

// Router serves the parent-facing bot: parents link a student id once
// and then pull progress reports and mistake summaries in chat.
type Router struct {
	Bot       *tgbotapi.BotAPI
	Questions *store.QuestionRepo
	Reports   *store.ReportRepo
	Focus     *store.FocusRepo

	links sync.Map // chatID -> studentID
}

const reportMaxAge = 6 * time.Hour

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if !upd.Message.IsCommand() {
		r.send(cid, "I only understand commands. Try /help.")
		return
	}

	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, "Parent bot of the study helper.\n"+
			"Commands:\n"+
			"/link <student_id> — link your child's account\n"+
			"/report [week|month|all] — progress report\n"+
			"/mistakes — mistake notebook summary\n"+
			"/focus — focus-timer totals\n"+
			"/health")
	case "health":
		r.send(cid, "OK")
	case "link":
		r.handleLink(cid, upd.Message.CommandArguments())
	case "report":
		r.handleReport(cid, upd.Message.CommandArguments())
	case "mistakes":
		r.handleMistakes(cid)
	case "focus":
		r.handleFocus(cid)
	default:
		r.send(cid, "Unknown command. Try /help.")
	}
}

func (r *Router) handleLink(cid int64, args string) {
	studentID := strings.TrimSpace(args)
	if studentID == "" {
		r.send(cid, "Usage: /link <student_id>")
		return
	}
	r.links.Store(cid, studentID)
	r.send(cid, "Linked. Ask for /report whenever you like.")
}

func (r *Router) linkedStudent(cid int64) (string, bool) {
	if v, ok := r.links.Load(cid); ok {
		return v.(string), true
	}
	return "", false
}

func (r *Router) handleReport(cid int64, args string) {
	studentID, ok := r.linkedStudent(cid)
	if !ok {
		r.send(cid, "No student linked yet. Use /link <student_id> first.")
		return
	}
	tf := progress.ParseTimeframe(args)
	if strings.TrimSpace(args) == "" {
		tf = progress.TimeframeWeek
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rep, err := r.Reports.Find(ctx, studentID, string(tf), reportMaxAge)
	if errors.Is(err, store.ErrNotFound) {
		rep, err = r.buildReport(ctx, studentID, tf)
		if err == nil {
			if uerr := r.Reports.Upsert(ctx, rep); uerr != nil {
				log.Printf("report cache write: %v", uerr)
			}
		}
	}
	if err != nil {
		r.send(cid, "Could not build the report: "+err.Error())
		return
	}
	r.send(cid, report.RenderText(rep))
}

func (r *Router) buildReport(ctx context.Context, studentID string, tf progress.Timeframe) (report.Report, error) {
	now := time.Now().UTC()
	recs, err := r.Questions.Records(ctx, studentID)
	if err != nil {
		return report.Report{}, err
	}
	focus, err := r.Focus.Summary(ctx, studentID, tf.Cutoff(now))
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(studentID, tf, recs, focus.Sessions, focus.TotalMinutes, focus.Tomatoes, now), nil
}

func (r *Router) handleMistakes(cid int64) {
	studentID, ok := r.linkedStudent(cid)
	if !ok {
		r.send(cid, "No student linked yet. Use /link <student_id> first.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	recs, err := r.Questions.Records(ctx, studentID)
	if err != nil {
		r.send(cid, "Could not load the archive: "+err.Error())
		return
	}
	groups := mistakeGroupsText(recs)
	r.send(cid, groups)
}

func (r *Router) handleFocus(cid int64) {
	studentID, ok := r.linkedStudent(cid)
	if !ok {
		r.send(cid, "No student linked yet. Use /link <student_id> first.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sum, err := r.Focus.Summary(ctx, studentID, time.Time{})
	if err != nil {
		r.send(cid, "Could not load focus history: "+err.Error())
		return
	}
	r.send(cid, fmt.Sprintf("Focus sessions: %d (%d completed)\nFocused minutes: %d\nTomatoes grown: %d",
		sum.Sessions, sum.Completed, sum.TotalMinutes, sum.Tomatoes))
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
