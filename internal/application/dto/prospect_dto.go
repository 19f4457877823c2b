package dto

import (
	"time"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// CreateProspectRequest alta de un prospecto (primer contacto).
type CreateProspectRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Priority string `json:"priority"` // baja|media|alta|urgente (default media)
	Notes    string `json:"notes"`
}

// TransitionRequest cambio de etapa. El motivo es obligatorio: tanto la
// edición manual como el arrastre en el tablero pasan por aquí.
type TransitionRequest struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

// StageChangeResponse una entrada del historial de etapas.
type StageChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason"`
	Actor     string    `json:"actor"`
	ChangedAt time.Time `json:"changed_at"`
}

// ProspectResponse representación HTTP de un prospecto.
type ProspectResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	Address      string                `json:"address"`
	Stage        string                `json:"stage"`
	StageLabel   string                `json:"stage_label"`
	Priority     string                `json:"priority"`
	Notes        string                `json:"notes,omitempty"`
	StageHistory []StageChangeResponse `json:"stage_history,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TransitionResponse resultado de una transición de etapa. Warning se llena
// cuando la cascada de conversión a pedido falló sin revertir la transición.
type TransitionResponse struct {
	Prospect *ProspectResponse `json:"prospect"`
	Order    *OrderResponse    `json:"order,omitempty"`
	Warning  string            `json:"warning,omitempty"`
}

// ToProspectResponse convierte la entidad a su representación HTTP.
func ToProspectResponse(p *entity.Prospect) *ProspectResponse {
	resp := &ProspectResponse{
		ID:         p.ID,
		Name:       p.Name,
		Phone:      p.Phone,
		Email:      p.Email,
		Address:    p.Address,
		Stage:      string(p.Stage),
		StageLabel: p.Stage.Label(),
		Priority:   string(p.Priority),
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, h := range p.StageHistory {
		resp.StageHistory = append(resp.StageHistory, StageChangeResponse{
			From:      string(h.From),
			To:        string(h.To),
			Reason:    h.Reason,
			Actor:     h.Actor,
			ChangedAt: h.ChangedAt,
		})
	}
	return resp
}
