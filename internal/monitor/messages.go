package monitor

import (
	"fmt"
	"math"
	"strconv"

	"energy_tracker/internal/models"
)

// message is the rendered title/body of a goal notification.
type message struct {
	Type  models.NotificationType
	Title string
	Body  string
}

func currentText(s models.GoalProgressSnapshot) string {
	return strconv.FormatFloat(s.Current, 'f', 2, 64)
}

func exceededMessage(s models.GoalProgressSnapshot) message {
	by := int(math.Round(s.Progress - 100))
	cur := s.Amount(currentText(s))
	tgt := s.Amount(models.FormatTarget(s.Target))

	m := message{Type: models.NotificationWarning}
	switch s.Type {
	case models.GoalCost:
		m.Title = "💰 Budget Limit Exceeded!"
		m.Body = fmt.Sprintf("You've exceeded your electricity budget by %d%%! Current spending: %s of %s. Review your appliance usage to reduce costs.", by, cur, tgt)
	case models.GoalCarbon:
		m.Title = "🌿 Carbon Limit Exceeded!"
		m.Body = fmt.Sprintf("You've exceeded your carbon emission limit by %d%%! Current emissions: %s of %s. Try using energy-efficient appliances.", by, cur, tgt)
	default:
		m.Title = "⚡ Energy Limit Exceeded!"
		m.Body = fmt.Sprintf("You've exceeded your energy consumption limit by %d%%! Current usage: %s of %s. Consider reducing appliance usage to get back on track.", by, cur, tgt)
	}
	return m
}

func completedMessage(s models.GoalProgressSnapshot) message {
	cur := s.Amount(currentText(s))
	tgt := s.Amount(models.FormatTarget(s.Target))

	m := message{Type: models.NotificationSuccess, Title: "Goal Achieved!"}
	switch s.Type {
	case models.GoalCost:
		m.Body = fmt.Sprintf("💰 Excellent budget control! You've stayed exactly within your electricity budget of %s! Current spending: %s.", tgt, cur)
	case models.GoalCarbon:
		m.Body = fmt.Sprintf("🌿 Perfect environmental stewardship! You've exactly met your carbon reduction goal of %s! Current emissions: %s.", tgt, cur)
	default:
		m.Body = fmt.Sprintf("🎉 Perfect! You've exactly met your energy consumption goal of %s! Current usage: %s. Excellent energy management!", tgt, cur)
	}
	return m
}

func milestoneMessage(s models.GoalProgressSnapshot, pct int) message {
	cur := s.Amount(currentText(s))
	tgt := s.Amount(models.FormatTarget(s.Target))

	m := message{Type: models.NotificationInfo}
	if s.Type == models.GoalCost {
		m.Title = "💰 Budget Limit Alert"
		m.Body = fmt.Sprintf("You've used %d%% of your electricity budget (%s of %s). ", pct, cur, tgt)
		if pct == 90 {
			m.Body += "You're approaching your budget limit! Consider reducing usage to stay within budget."
		} else {
			m.Body += "You're making good progress with your budget management."
		}
		return m
	}

	m.Title = fmt.Sprintf("🎯 %s Goal Progress", s.Type.Label())
	m.Body = fmt.Sprintf("You've reached %d%% of your %s goal (%s of %s). ", pct, s.Type, cur, tgt)
	if pct == 90 {
		m.Body += "You're approaching your limit! Consider reducing usage to stay within limit."
	} else {
		m.Body += "You're making good progress with your usage management."
	}
	return m
}
