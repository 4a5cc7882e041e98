package client

// Client is static reference data: a serviced company and its roster of
// people allowed to raise tickets.
type Client struct {
	ID            string      `json:"id" gorm:"primaryKey"`
	Name          string      `json:"name" gorm:"column:nome;not null"`
	ContactPerson string      `json:"contact_person" gorm:"column:contato"`
	Requesters    []Requester `json:"requesters" gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string {
	return "clientes"
}

// Requester is the canonical identity of a person at a client. Tickets
// reference requesters by this id.
type Requester struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientID string `json:"client_id" gorm:"column:cliente_id;not null;index"`
	Name     string `json:"name" gorm:"column:nome;not null"`
}

func (Requester) TableName() string {
	return "solicitantes"
}
