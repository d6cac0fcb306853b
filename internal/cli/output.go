package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/pagination"
)

var (
	idColor    = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	labelColor = color.New(color.Bold)
)

func headcountText(h *int) string {
	if h == nil {
		return "-"
	}
	return strconv.Itoa(*h)
}

func printLeadRow(w io.Writer, l model.Lead) {
	fmt.Fprintf(w, "%s  %s  %-24s %-14s %8s  %s\n",
		idColor.Sprint(l.ID),
		dimColor.Sprint(l.CreatedAt.Format(time.RFC3339)),
		l.Company,
		l.Industry,
		headcountText(l.Headcount),
		l.Name,
	)
}

func printLead(w io.Writer, l model.Lead) {
	phone := "-"
	if l.PhoneNumber != nil {
		phone = *l.PhoneNumber
	}
	rows := [][2]string{
		{"id", idColor.Sprint(l.ID)},
		{"name", l.Name},
		{"job_title", l.JobTitle},
		{"company", l.Company},
		{"email", l.Email},
		{"phone", phone},
		{"industry", l.Industry},
		{"headcount", headcountText(l.Headcount)},
		{"created_at", l.CreatedAt.Format(time.RFC3339Nano)},
		{"updated_at", l.UpdatedAt.Format(time.RFC3339Nano)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-11s", r[0]+":"), r[1])
	}
}

func printPageFooter(w io.Writer, p pagination.Page[model.Lead]) {
	fmt.Fprintf(w, "%s %d of %d\n", labelColor.Sprint("showing"), len(p.Items), p.Total)
	if p.CursorReset {
		fmt.Fprintln(w, warnColor.Sprint("cursor could not be resolved; restarted from the first page"))
	}
	if p.NextCursor != nil {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("next:"), *p.NextCursor)
	}
	if p.PrevCursor != nil {
		prev := *p.PrevCursor
		if prev == "" {
			prev = dimColor.Sprint(`"" (first page)`)
		}
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("prev:"), prev)
	}
}
