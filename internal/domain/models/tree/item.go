package tree

import (
	"encoding/json"
	"time"
)

// Item is the external representation of a node returned by tree queries.
// Type selects which variant (folder, page, asset) the item represents.
type Item struct {
	ID            string    `json:"id"`
	Depth         int       `json:"depth"`
	Type          NodeType  `json:"type"`
	FolderPath    string    `json:"folderPath"` // External path of the parent folder
	Path          string    `json:"path"`       // External path of the node itself
	Name          string    `json:"fileName"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ChildrenCount *int      `json:"childrenCount,omitempty"` // Folders only
}

// TypeName returns the name of the variant for the item's type.
func (i Item) TypeName() string {
	switch i.Type {
	case NodeTypeFolder:
		return "TreeItemFolder"
	case NodeTypePage:
		return "TreeItemPage"
	case NodeTypeAsset:
		return "TreeItemAsset"
	default:
		return ""
	}
}

// MarshalJSON adds the variant name so clients can dispatch on it.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		TypeName string `json:"__typename"`
		plain
	}{
		TypeName: i.TypeName(),
		plain:    plain(i),
	})
}

// NewItem shapes a stored node into its external form.
func NewItem(n *Node) Item {
	depth := n.Depth
	if depth == 0 {
		depth = n.FolderPath.Len() + 1
	}

	return Item{
		ID:         n.ID,
		Depth:      depth,
		Type:       n.Type,
		FolderPath: n.FolderPath.External(),
		Path:       n.FullPath().External(),
		Name:       n.FileName,
		Title:      n.Title,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
