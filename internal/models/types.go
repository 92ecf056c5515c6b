// Package models defines the data models used in the application.
package models

import "errors"

// ErrNotFound is returned when no record matches a (numero_processo, owner) pair.
var ErrNotFound = errors.New("pericia not found")

// ErrDuplicateProcesso is returned when more than one record matches a
// (numero_processo, owner) pair. The process number is the business key and
// is expected to be unique within a user's scope; several matches mean no
// update target can be chosen safely.
var ErrDuplicateProcesso = errors.New("multiple pericias share the same numero_processo")

// Pericia represents one judicial expert-examination case owned by a user.
//
// Date fields are plain YYYY-MM-DD strings end to end; the pipelines never
// carry a timestamp or a timezone. Money and nullable text fields are
// pointers: nil means unset, which is distinct from zero/empty.
type Pericia struct {
	// DynamoDB keys, filled by the repository on insert.
	PK string `dynamodbav:"PK" json:"-"` // USER#<sub>
	SK string `dynamodbav:"SK" json:"-"` // PERICIA#<periciaID> (ULID)

	ID             string `dynamodbav:"pericia_id" json:"id"`
	UserID         string `dynamodbav:"user_id" json:"user_id"`
	NumeroProcesso string `dynamodbav:"numero_processo" json:"numero_processo"`
	Numero         *int   `dynamodbav:"numero,omitempty" json:"numero,omitempty"`

	Status Status `dynamodbav:"status" json:"status"`

	Requerente string  `dynamodbav:"requerente" json:"requerente"`
	Requerido  string  `dynamodbav:"requerido" json:"requerido"`
	Vara       string  `dynamodbav:"vara" json:"vara"`
	Perito     string  `dynamodbav:"perito" json:"perito"`
	Cidade     *string `dynamodbav:"cidade,omitempty" json:"cidade,omitempty"`
	Endereco   *string `dynamodbav:"endereco,omitempty" json:"endereco,omitempty"`
	Funcao     *string `dynamodbav:"funcao,omitempty" json:"funcao,omitempty"`

	DataNomeacao        string  `dynamodbav:"data_nomeacao" json:"data_nomeacao"`
	DataPericiaAgendada *string `dynamodbav:"data_pericia_agendada,omitempty" json:"data_pericia_agendada,omitempty"`
	DataPrazo           *string `dynamodbav:"data_prazo,omitempty" json:"data_prazo,omitempty"`
	DataEntrega         *string `dynamodbav:"data_entrega,omitempty" json:"data_entrega,omitempty"`
	PrazoEsclarecimento *string `dynamodbav:"prazo_esclarecimento,omitempty" json:"prazo_esclarecimento,omitempty"`
	DataEsclarecimento  *string `dynamodbav:"data_esclarecimento,omitempty" json:"data_esclarecimento,omitempty"`
	DataRecebimento     *string `dynamodbav:"data_recebimento,omitempty" json:"data_recebimento,omitempty"`
	Horario             *string `dynamodbav:"horario,omitempty" json:"horario,omitempty"` // HH:MM:SS

	ValorCausa       *float64 `dynamodbav:"valor_causa,omitempty" json:"valor_causa,omitempty"`
	Honorarios       *float64 `dynamodbav:"honorarios,omitempty" json:"honorarios,omitempty"`
	ValorRecebimento *float64 `dynamodbav:"valor_recebimento,omitempty" json:"valor_recebimento,omitempty"`

	// Annex code sets. nil means "not applicable"; an empty set is never stored.
	NR15 []int `dynamodbav:"nr15,omitempty" json:"nr15,omitempty"`
	NR16 []int `dynamodbav:"nr16,omitempty" json:"nr16,omitempty"`

	Deslocamento *string `dynamodbav:"deslocamento,omitempty" json:"deslocamento,omitempty"`
	Estacao      *string `dynamodbav:"estacao,omitempty" json:"estacao,omitempty"`
	LinhaNumero  *string `dynamodbav:"linha_numero,omitempty" json:"linha_numero,omitempty"`
	LinhaCor     *string `dynamodbav:"linha_cor,omitempty" json:"linha_cor,omitempty"`

	LinkProcesso    *string `dynamodbav:"link_processo,omitempty" json:"link_processo,omitempty"`
	EmailReclamante *string `dynamodbav:"email_reclamante,omitempty" json:"email_reclamante,omitempty"`
	EmailReclamada  *string `dynamodbav:"email_reclamada,omitempty" json:"email_reclamada,omitempty"`
	Observacoes     *string `dynamodbav:"observacoes,omitempty" json:"observacoes,omitempty"`

	CreatedAt string `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at" json:"updated_at"`
}
