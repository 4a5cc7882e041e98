package ticket

import "time"

// Status is a ticket's lifecycle state. Wire values are the display strings
// the rest of the system (and its database) already uses.
type Status string

const (
	StatusAguardandoAtendimento Status = "Aguardando Atendimento"
	StatusEmAtendimento         Status = "Em Atendimento"
	StatusAguardandoCliente     Status = "Aguardando Cliente"
	StatusElaborandoOrcamento   Status = "Elaborando Orçamento"
	StatusAtendimentoAgendado   Status = "Atendimento Agendado"
	StatusConcluido             Status = "Concluído"
	StatusCancelado             Status = "Cancelado"
)

var allStatuses = []Status{
	StatusAguardandoAtendimento,
	StatusEmAtendimento,
	StatusAguardandoCliente,
	StatusElaborandoOrcamento,
	StatusAtendimentoAgendado,
	StatusConcluido,
	StatusCancelado,
}

func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the ticket's technical domain tag.
type Label string

const (
	LabelCloud                Label = "Cloud"
	LabelAlarmes              Label = "Alarmes"
	LabelSistemasOperacionais Label = "Sistemas Operacionais"
	LabelRede                 Label = "Rede"
	LabelHardware             Label = "Hardware"
	LabelSeguranca            Label = "Segurança"
)

func (l Label) Valid() bool {
	switch l {
	case LabelCloud, LabelAlarmes, LabelSistemasOperacionais, LabelRede, LabelHardware, LabelSeguranca:
		return true
	}
	return false
}

// DemandType is the nature of the request.
type DemandType string

const (
	DemandRelatoProblema       DemandType = "Relato de Problema"
	DemandConfiguracao         DemandType = "Configuração/Alteração"
	DemandImplantacao          DemandType = "Implantação"
	DemandDescarteEquipamentos DemandType = "Descarte de Equipamentos"
	DemandDocumentacao         DemandType = "Documentação"
	DemandInstrucao            DemandType = "Instrução/Informação ao Usuário"
)

func (d DemandType) Valid() bool {
	switch d {
	case DemandRelatoProblema, DemandConfiguracao, DemandImplantacao,
		DemandDescarteEquipamentos, DemandDocumentacao, DemandInstrucao:
		return true
	}
	return false
}

type Ticket struct {
	ID                string       `json:"id" gorm:"primaryKey"`
	Title             string       `json:"title" gorm:"column:titulo;not null"`
	Description       string       `json:"description" gorm:"column:descricao"`
	ClientID          string       `json:"client_id" gorm:"column:cliente_id;not null;index"`
	RequesterID       int64        `json:"requester_id" gorm:"column:solicitante_id"`
	RequesterName     string       `json:"requester_name" gorm:"column:solicitante_nome"`
	AssetIDs          []string     `json:"asset_ids" gorm:"-"`
	Label             Label        `json:"label" gorm:"column:topico"`
	Status            Status       `json:"status" gorm:"column:status"`
	Type              DemandType   `json:"type" gorm:"column:tipo"`
	AssigneeID        *string      `json:"assignee_id,omitempty" gorm:"column:agente_id"`
	LastUpdatedByID   string       `json:"last_updated_by_id" gorm:"column:usuario_alteracao_id"`
	LastUpdatedByName string       `json:"last_updated_by_name" gorm:"column:usuario_alteracao_nome"`
	CreatedAt         time.Time    `json:"created_at" gorm:"column:data_criacao"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"column:data_atualizacao"`
	Attachments       []Attachment `json:"attachments" gorm:"foreignKey:TicketID"`
}

func (Ticket) TableName() string {
	return "chamados"
}

// ActivityKind distinguishes the append-only log entry types on a ticket.
type ActivityKind string

const (
	ActivityComment      ActivityKind = "COMMENT"
	ActivityStatusChange ActivityKind = "STATUS_CHANGE"
	ActivityAttachment   ActivityKind = "ATTACHMENT"
)

// Activity is an immutable log entry attached to a ticket. One is created on
// ticket open and on every status change; users append comments.
type Activity struct {
	ID         string       `json:"id" gorm:"primaryKey"`
	TicketID   string       `json:"ticket_id" gorm:"column:chamado_id;not null;index"`
	AuthorID   string       `json:"author_id" gorm:"column:autor_id"`
	AuthorName string       `json:"author_name" gorm:"column:autor_nome"`
	Content    string       `json:"content" gorm:"column:conteudo"`
	Kind       ActivityKind `json:"kind" gorm:"column:tipo"`
	CreatedAt  time.Time    `json:"created_at" gorm:"column:data_criacao"`
}

func (Activity) TableName() string {
	return "atividades"
}

// Attachment holds file metadata only; the binary payload lives outside the
// backend.
type Attachment struct {
	ID       string `json:"id" gorm:"primaryKey"`
	TicketID string `json:"ticket_id" gorm:"column:chamado_id;not null;index"`
	FileName string `json:"file_name" gorm:"column:nome_arquivo"`
	FileSize int64  `json:"file_size" gorm:"column:tamanho"`
	MimeType string `json:"mime_type" gorm:"column:tipo_mime"`
}

func (Attachment) TableName() string {
	return "anexos"
}

// Actor identifies the user performing a mutation, stamped into
// lastUpdatedBy and activity authorship.
type Actor struct {
	ID   string
	Name string
}
