package entity

import "time"

// Stage etapa del prospecto en el pipeline de venta.
type Stage string

const (
	StageNuevo        Stage = "nuevo"
	StageContactado   Stage = "contactado"
	StageCitaAgendada Stage = "cita_agendada"
	StageCotizacion   Stage = "cotizacion"
	StageVentaCerrada Stage = "venta_cerrada"
	StagePedido       Stage = "pedido"
	StageFabricacion  Stage = "fabricacion"
	StageInstalacion  Stage = "instalacion"
	StageEntregado    Stage = "entregado"
	StagePerdido      Stage = "perdido" // terminal, alcanzable desde cualquier etapa
)

// stageLabels etiqueta y emoji por etapa para la capa de presentación.
// Enum cerrado + tabla de lookup; una etapa fuera de la tabla no existe.
var stageLabels = map[Stage]string{
	StageNuevo:        "🆕 Nuevo",
	StageContactado:   "📞 Contactado",
	StageCitaAgendada: "📅 Cita agendada",
	StageCotizacion:   "📋 Cotización",
	StageVentaCerrada: "🤝 Venta cerrada",
	StagePedido:       "📦 Pedido",
	StageFabricacion:  "🏭 Fabricación",
	StageInstalacion:  "🔧 Instalación",
	StageEntregado:    "✅ Entregado",
	StagePerdido:      "❌ Perdido",
}

// IsValid indica si la etapa pertenece al enum.
func (s Stage) IsValid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Label devuelve la etiqueta de presentación de la etapa.
func (s Stage) Label() string {
	return stageLabels[s]
}

// Stages devuelve todas las etapas en el orden del pipeline.
func Stages() []Stage {
	return []Stage{
		StageNuevo, StageContactado, StageCitaAgendada, StageCotizacion,
		StageVentaCerrada, StagePedido, StageFabricacion, StageInstalacion,
		StageEntregado, StagePerdido,
	}
}

// Priority prioridad comercial del prospecto.
type Priority string

const (
	PriorityBaja    Priority = "baja"
	PriorityMedia   Priority = "media"
	PriorityAlta    Priority = "alta"
	PriorityUrgente Priority = "urgente"
)

// IsValid indica si la prioridad pertenece al enum.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityBaja, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// StageChange entrada del historial de etapas (auditoría).
type StageChange struct {
	ID         string
	ProspectID string
	From       Stage
	To         Stage
	Reason     string
	Actor      string
	ChangedAt  time.Time
}

// Prospect contacto que avanza por el pipeline de venta.
// La etapa solo se muta a través del caso de uso de transición.
type Prospect struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Address      string
	Stage        Stage
	Priority     Priority
	Notes        string
	StageHistory []StageChange
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
