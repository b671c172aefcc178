package bookings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/benchbook/internal/booking"
	"github.com/julianstephens/benchbook/internal/cli"
)

var stateMarks = map[booking.SlotState]string{
	booking.Free:     "·",
	booking.Selected: "+",
	booking.Booked:   "■",
	booking.Blocked:  "x",
}

type SlotsCmd struct {
	Resource string `arg:"" help:"Machine serial."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	Half     string `help:"Which half of the day to show (am|pm|all)." enum:"am,pm,all" default:"all"`
	Select   []int  `help:"Preview a selection: shows what commit and cancel would act on."`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Resource(c.Resource)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}

	sel := booking.NewSelection(r.ID, date).With(c.Select...)
	views, err := ctx.Engine.Classify(r.ID, date, sel)
	if err != nil {
		return err
	}

	shown := views
	switch c.Half {
	case "am":
		shown = booking.Half(views, false)
	case "pm":
		shown = booking.Half(views, true)
	}

	fmt.Printf("%s on %s\n", r.Name, date)
	for _, v := range shown {
		pick := " "
		if v.InSelection {
			pick = "*"
		}
		fmt.Printf("  %s %s %-15s %s\n", pick, stateMarks[v.State], v.Label(), v.State)
	}

	if !sel.IsEmpty() {
		actions := booking.AvailableActions(views, sel)
		fmt.Printf("\nSelection %v: commit %s, cancel %s\n", sel.Slots(), onOff(actions.CanCommit), onOff(actions.CanCancel))
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func joinSlots(slots []int) string {
	if len(slots) == 0 {
		return "none"
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = fmt.Sprintf("%02d:00", s)
	}
	return strings.Join(parts, ", ")
}
