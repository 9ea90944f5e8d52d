// Package catalog holds the clinic's static roles and daily tasks.
package catalog

import (
	"fmt"
	"strings"
)

// Role is one of the three staff functions a checklist belongs to.
type Role int

const (
	FrontDesk Role = iota
	Finance
	ClinicalAssistant
)

var roleNames = []string{"Atendente", "Financeiro", "ASB"}

// roleColors are the accent colours of each role tab.
var roleColors = []string{"#F472B6", "#60A5FA", "#4ADE80"}

// Roles returns every role in tab order.
func Roles() []Role {
	return []Role{FrontDesk, Finance, ClinicalAssistant}
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Color is the role's accent colour as a hex string.
func (r Role) Color() string {
	if r < 0 || int(r) >= len(roleColors) {
		return "#666666"
	}
	return roleColors[r]
}

// ParseRole maps a display name back to its role.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if strings.EqualFold(n, name) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// Task is one checklist item. Tasks are never created at runtime.
type Task struct {
	ID       string
	Role     Role
	Category string
	Text     string
}

// Tasks returns a copy of the whole catalog.
func Tasks() []Task {
	out := make([]Task, len(catalog))
	copy(out, catalog)
	return out
}

// ForRole returns the role's tasks in catalog order.
func ForRole(r Role) []Task {
	var out []Task
	for _, t := range catalog {
		if t.Role == r {
			out = append(out, t)
		}
	}
	return out
}

// Lookup finds a task by id.
func Lookup(id string) (Task, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Guideline is a titled note shown under a role's list.
type Guideline struct {
	Title string
	Text  string
}

var frontDeskGuidelines = []Guideline{
	{"Negociação", "Nunca diga que passará o contato da CRC. Diga que a CRC entrará em contato para continuidade e avise a equipe imediatamente."},
	{"Agendamento", "Habilitar CONFIRMAÇÃO (1 dia antes) e ALERTA (no dia). Sempre definir a categoria da consulta."},
	{"Documentação", "Mandar uso de imagem pelo sistema; se não assinado, imprimir e solicitar no dia. Anamnese deve ser preenchida presencialmente no dia da consulta."},
	{"Zelo", "Verificar água na geladeira, enviar pré/pós consulta e mensagem de acompanhamento para pacientes que realizaram procedimentos."},
	{"PROIBIDO DIMINUTIVOS", "Nunca use mãezinha, filhinho, dorzinha, querida, etc. Chame SEMPRE pelo nome."},
	{"VOCABULÁRIO", "Troque a palavra custo por investimento."},
}

// Guidelines returns the observation notes for a role, if any.
func Guidelines(r Role) []Guideline {
	if r == FrontDesk {
		return frontDeskGuidelines
	}
	return nil
}
