package domain

// SurveySummary is one entry of the account's survey list.
type SurveySummary struct {
	ID           string `json:"id" mapstructure:"id"`
	Name         string `json:"name" mapstructure:"name"`
	OwnerID      string `json:"ownerId" mapstructure:"ownerId"`
	LastModified string `json:"lastModified" mapstructure:"lastModified"`
	CreationDate string `json:"creationDate" mapstructure:"creationDate"`
	IsActive     bool   `json:"isActive" mapstructure:"isActive"`
}

// DefaultBlockType marks the block every new survey starts with.
const DefaultBlockType = "Default"
