package ticket

import "errors"

// CreateTicketDTO is the request payload for opening a ticket. The server
// assigns id, timestamps, lastUpdatedBy and an empty attachment list.
type CreateTicketDTO struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ClientID      string     `json:"client_id"`
	RequesterID   int64      `json:"requester_id"`
	RequesterName string     `json:"requester_name"`
	AssetIDs      []string   `json:"asset_ids"`
	Label         Label      `json:"label"`
	Status        Status     `json:"status"`
	Type          DemandType `json:"type"`
	AssigneeID    *string    `json:"assignee_id,omitempty"`
}

func (dto CreateTicketDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if dto.ClientID == "" {
		return errors.New("client_id is required")
	}
	if dto.RequesterID == 0 {
		return errors.New("requester_id is required")
	}
	if !dto.Label.Valid() {
		return errors.New("unknown label")
	}
	if !dto.Type.Valid() {
		return errors.New("unknown demand type")
	}
	if dto.Status != "" && !dto.Status.Valid() {
		return errors.New("unknown status")
	}
	return nil
}

// UpdateTicketDTO carries a partial update. Only non-nil fields are applied;
// the stored record is shallow-merged with whatever is present.
type UpdateTicketDTO struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	ClientID      *string     `json:"client_id,omitempty"`
	RequesterID   *int64      `json:"requester_id,omitempty"`
	RequesterName *string     `json:"requester_name,omitempty"`
	AssetIDs      *[]string   `json:"asset_ids,omitempty"`
	Label         *Label      `json:"label,omitempty"`
	Status        *Status     `json:"status,omitempty"`
	Type          *DemandType `json:"type,omitempty"`
	AssigneeID    *string     `json:"assignee_id,omitempty"`
}

func (dto UpdateTicketDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return errors.New("title cannot be empty")
	}
	if dto.Status != nil && !dto.Status.Valid() {
		return errors.New("unknown status")
	}
	if dto.Label != nil && !dto.Label.Valid() {
		return errors.New("unknown label")
	}
	if dto.Type != nil && !dto.Type.Valid() {
		return errors.New("unknown demand type")
	}
	return nil
}

// CreateAttachmentDTO carries attachment metadata. The binary itself is
// stored outside the backend.
type CreateAttachmentDTO struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

func (dto CreateAttachmentDTO) Validate() error {
	if dto.FileName == "" {
		return errors.New("file_name is required")
	}
	if dto.FileSize < 0 {
		return errors.New("file_size cannot be negative")
	}
	return nil
}

// CreateCommentDTO is the payload for a user-authored activity.
type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (dto CreateCommentDTO) Validate() error {
	if dto.Content == "" {
		return errors.New("content is required")
	}
	return nil
}
