// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/tally"
)

// Standing is one option's place in a result
type Standing struct {
	Place  int // 1-based
	Option int
	Detail string
}

type ranked struct {
	option  int
	primary float64
	second  float64
	detail  string
}

// Standings orders the options of r from winner to last place
func Standings(r tally.Result, options []models.Option) []Standing {
	rows := make([]ranked, len(options))
	for i := range options {
		rows[i] = rank(r, i)
	}

	winner := r.Winner()
	slices.SortStableFunc(rows, func(a, b ranked) int {
		switch {
		case a.option == winner:
			return -1
		case b.option == winner:
			return 1
		case a.primary != b.primary:
			return cmpDesc(a.primary, b.primary)
		case a.second != b.second:
			return cmpDesc(a.second, b.second)
		}
		return a.option - b.option
	})

	out := make([]Standing, len(rows))
	for i, row := range rows {
		out[i] = Standing{Place: i + 1, Option: row.option, Detail: row.detail}
	}
	return out
}

func cmpDesc(a, b float64) int {
	if a > b {
		return -1
	}
	return 1
}

func count(n int, singular, plural string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, singular, plural)
}

func rank(r tally.Result, i int) ranked {
	row := ranked{option: i}
	switch res := r.(type) {
	case tally.FirstPastThePostResult:
		row.primary = float64(res.Tally[i])
		row.detail = count(res.Tally[i], "first choice", "first choices")
	case tally.ApprovalResult:
		row.primary = float64(res.Approvals[i])
		row.detail = count(res.Approvals[i], "approval", "approvals")
	case tally.PreferentialResult:
		out := len(res.Rounds)
		for n, round := range res.Rounds {
			if round.Dropped == i {
				out = n
				break
			}
		}
		last := res.Rounds[min(out, len(res.Rounds)-1)]
		row.primary = float64(out)
		row.second = float64(last.Tally[i])
		if out < len(res.Rounds) {
			row.detail = fmt.Sprintf("%s, out in round %d", count(last.Tally[i], "vote", "votes"), out+1)
		} else {
			row.detail = fmt.Sprintf("%s in the final round", count(last.Tally[i], "vote", "votes"))
		}
	case tally.GoodOkBadResult:
		g := res.Tally[i]
		row.primary = float64(g.Good)
		row.second = -float64(g.Bad)
		row.detail = fmt.Sprintf("%s good, %s ok, %s bad", humanize.Comma(int64(g.Good)), humanize.Comma(int64(g.Ok)), humanize.Comma(int64(g.Bad)))
	case tally.StarResult:
		row.primary = float64(res.ScoreTally[i])
		row.detail = count(res.ScoreTally[i], "star", "stars")
	case tally.AntiPluralityResult:
		row.primary = -float64(res.Tally[i])
		row.detail = count(res.Tally[i], "least-favorite vote", "least-favorite votes")
	case tally.UsualJudgmentResult:
		c := res.Counts[i]
		row.primary = float64(c.Majority)
		row.detail = fmt.Sprintf("majority grade %d of %d", c.Majority, len(c.Histogram)-1)
	}
	return row
}

// Runoff describes a runoff between finalists, or "" if r had none
func Runoff(r tally.Result, options []models.Option) string {
	var ro *tally.Runoff
	switch res := r.(type) {
	case tally.GoodOkBadResult:
		ro = res.Runoff
	case tally.StarResult:
		ro = res.Runoff
	}
	if ro == nil {
		return ""
	}
	a, b := ro.Finalists[0], ro.Finalists[1]
	return fmt.Sprintf("Runoff: %s %s, %s %s",
		options[a].Label(), humanize.Comma(int64(ro.Votes[0])),
		options[b].Label(), humanize.Comma(int64(ro.Votes[1])))
}

// Summary renders held as plain text. now is used for the relative close time.
func Summary(held election.HeldElection, now time.Time) string {
	var sb strings.Builder
	primary := held.Primary()

	fmt.Fprintf(&sb, "%s (%s)\n", held.Name, held.Method.Title())
	fmt.Fprintf(&sb, "Winner: %s\n", held.Winner().Label())
	fmt.Fprintf(&sb, "Voters: %s\n", humanize.Comma(int64(held.Voters)))
	fmt.Fprintf(&sb, "Open %s to %s sim time, closed %s\n",
		simClock(held.OpenedAt), simClock(held.ClosedAt), humanize.RelTime(held.Closed, now, "ago", "from now"))

	sb.WriteString("\n")
	for _, s := range Standings(primary, held.Options) {
		fmt.Fprintf(&sb, "%-5s %s: %s\n", humanize.Ordinal(s.Place), held.Options[s.Option].Label(), s.Detail)
	}
	if line := Runoff(primary, held.Options); line != "" {
		sb.WriteString(line + "\n")
	}
	if res, ok := primary.(tally.UsualJudgmentResult); ok && len(res.TieBreak) > 0 {
		fmt.Fprintf(&sb, "Tie-break: %s\n", count(len(res.TieBreak), "round", "rounds"))
		if res.Exhausted {
			sb.WriteString("Tie-break budget exhausted; lowest index kept\n")
		}
	}

	if len(held.Results) > 1 {
		agree, total := Agreement(held)
		fmt.Fprintf(&sb, "\nOther methods (%d of %d agree):\n", agree, total)
		for _, r := range held.Results[1:] {
			fmt.Fprintf(&sb, "  %s: %s\n", r.Method().Title(), held.Options[r.Winner()].Label())
		}
	}
	return sb.String()
}

// Agreement counts how many methods picked the same winner as the primary
func Agreement(held election.HeldElection) (agree, total int) {
	winner := held.Primary().Winner()
	for _, r := range held.Results {
		if r.Winner() == winner {
			agree++
		}
	}
	return agree, len(held.Results)
}

func simClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
