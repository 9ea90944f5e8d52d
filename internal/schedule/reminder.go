package schedule

import (
	"fmt"
	"math/rand/v2"
)

// ReminderTitle is the title of every reminder notification.
const ReminderTitle = "Sorriso Kids"

var reminderTemplates = []string{
	"Bom dia! ☀️ Os checklists de %s já estão disponíveis. Vamos começar?",
	"Olá! 🦷 Hora de iniciar as tarefas de %s. Tenha um ótimo dia!",
	"Checklist disponível! ✅ Não esqueça de ticar suas tarefas de %s hoje.",
}

// Reminder builds a reminder body for roleName. A nil rng uses the global source.
func Reminder(roleName string, rng *rand.Rand) (title, body string) {
	var i int
	if rng != nil {
		i = rng.IntN(len(reminderTemplates))
	} else {
		i = rand.IntN(len(reminderTemplates))
	}
	return ReminderTitle, fmt.Sprintf(reminderTemplates[i], roleName)
}
