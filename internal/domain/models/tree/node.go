package tree

import (
	"fmt"
	"time"

	"wikitree/internal/treepath"
)

// NodeType is the closed set of node kinds stored in the tree.
type NodeType string

const (
	NodeTypeFolder NodeType = "folder"
	NodeTypePage   NodeType = "page"
	NodeTypeAsset  NodeType = "asset"
)

// NodeTypes lists every valid node type.
var NodeTypes = []NodeType{NodeTypeFolder, NodeTypePage, NodeTypeAsset}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeFolder, NodeTypePage, NodeTypeAsset:
		return true
	}
	return false
}

// ParseNodeType converts a stored or user-supplied string to a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown node type %q", s)
	}
	return t, nil
}

// Node is one row of the tree: a folder, page or asset.
type Node struct {
	ID         string
	SiteID     string
	FolderPath treepath.Path // Internal path of the parent folder, empty = root
	FileName   string        // External name of this node within its parent
	Type       NodeType
	Title      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Depth is computed by queries (label count of the node's full path), never stored.
	Depth int
}

// FullPath returns the internal path of the node itself.
func (n *Node) FullPath() treepath.Path {
	return n.FolderPath.Child(n.FileName)
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n.Type == NodeTypeFolder
}

// RemovedNode identifies a row removed by a subtree delete.
type RemovedNode struct {
	ID   string
	Type NodeType
}

// PartitionRemoved splits removed rows into folder, page and asset ids.
func PartitionRemoved(removed []RemovedNode) (folders, pages, assets []string) {
	for _, r := range removed {
		switch r.Type {
		case NodeTypeFolder:
			folders = append(folders, r.ID)
		case NodeTypePage:
			pages = append(pages, r.ID)
		case NodeTypeAsset:
			assets = append(assets, r.ID)
		}
	}
	return folders, pages, assets
}
