package tree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
	"wikitree/internal/domain/repositories"
	treerepo "wikitree/internal/domain/repositories/tree"
	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/treepath"
)

// Result messages
const (
	msgFolderCreated = "Folder created successfully"
	msgFolderRenamed = "Folder renamed successfully"
	msgFolderDeleted = "Folder deleted successfully"
	msgInternal      = "An unexpected error occurred"
)

// folderService implements the FolderService interface
type folderService struct {
	nodes     treerepo.NodeRepository
	txManager repositories.TransactionManager
	cleaner   treesvc.ContentCleaner
	logger    *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	nodes treerepo.NodeRepository,
	txManager repositories.TransactionManager,
	cleaner treesvc.ContentCleaner,
	logger *slog.Logger,
) treesvc.FolderService {
	return &folderService{
		nodes:     nodes,
		txManager: txManager,
		cleaner:   cleaner,
		logger:    logger,
	}
}

// CreateFolder creates a folder under an optional parent
func (s *folderService) CreateFolder(ctx context.Context, req *treesvc.CreateFolderRequest) (result *tree.OperationResult, err error) {
	// Once begun, a mutation runs to commit or rollback
	ctx = context.WithoutCancel(ctx)
	ctx, span := startSpan(ctx, "tree.FolderService.CreateFolder", trace.WithAttributes(
		attribute.String("site_id", req.SiteID),
		attribute.String("path_name", req.PathName),
	))
	defer func() {
		countMutation("create", err)
		endSpan(span, err)
	}()

	var folder *tree.Node
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if req.SiteID == "" {
			return domain.NewValidationError(domain.CodeInvalidSite, "site id is required")
		}

		parentPath, err := s.resolveParentFolder(ctx, req.SiteID, req.ParentID)
		if err != nil {
			return err
		}

		if err := validateFolderInput(req.PathName, req.Title); err != nil {
			return err
		}

		existing, err := s.nodes.GetByParentAndName(ctx, req.SiteID, parentPath, req.PathName)
		if err != nil {
			return err
		}
		if existing != nil {
			return folderExists(parentPath.Child(req.PathName), existing.ID)
		}

		folder = &tree.Node{
			SiteID:     req.SiteID,
			FolderPath: parentPath,
			FileName:   req.PathName,
			Type:       tree.NodeTypeFolder,
			Title:      req.Title,
		}
		return s.nodes.Insert(ctx, folder)
	})
	if err != nil {
		err = s.translate(err, req.PathName)
		return s.fail("create folder", err), err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"site_id", folder.SiteID,
		"path", folder.FullPath().External(),
	)
	return tree.Succeed(msgFolderCreated), nil
}

// RenameFolder changes a folder's name and title. A name change moves the
// whole subtree: every descendant's folder path is rewritten in the same unit
// of work as the folder row.
func (s *folderService) RenameFolder(ctx context.Context, req *treesvc.RenameFolderRequest) (result *tree.OperationResult, err error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startSpan(ctx, "tree.FolderService.RenameFolder", trace.WithAttributes(
		attribute.String("folder_id", req.FolderID),
		attribute.String("path_name", req.PathName),
	))
	defer func() {
		countMutation("rename", err)
		endSpan(span, err)
	}()

	var (
		oldPath, newPath treepath.Path
		rewritten        int64
	)
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.loadFolder(ctx, req.FolderID)
		if err != nil {
			return err
		}

		if err := validateFolderInput(req.PathName, req.Title); err != nil {
			return err
		}

		oldPath = folder.FullPath()
		newPath = oldPath

		if req.PathName != folder.FileName {
			sibling, err := s.nodes.FindSibling(ctx, folder.SiteID, folder.FolderPath, req.PathName, folder.ID)
			if err != nil {
				return err
			}
			if sibling != nil {
				return folderExists(folder.FolderPath.Child(req.PathName), sibling.ID)
			}

			newPath = folder.FolderPath.Child(req.PathName)
			rewritten, err = s.nodes.RewritePathPrefix(ctx, folder.SiteID, oldPath, newPath)
			if err != nil {
				return err
			}
		}

		return s.nodes.UpdateTitleAndName(ctx, folder.ID, req.PathName, req.Title)
	})
	if err != nil {
		err = s.translate(err, req.PathName)
		return s.fail("rename folder", err), err
	}

	s.logger.Info("folder renamed",
		"id", req.FolderID,
		"old_path", oldPath.External(),
		"new_path", newPath.External(),
		"descendants_moved", rewritten,
	)
	return tree.Succeed(msgFolderRenamed), nil
}

// DeleteFolder removes a folder and everything below it. Page and asset ids
// are handed to the content cleaner after the removal has committed.
func (s *folderService) DeleteFolder(ctx context.Context, req *treesvc.DeleteFolderRequest) (result *tree.OperationResult, err error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startSpan(ctx, "tree.FolderService.DeleteFolder", trace.WithAttributes(
		attribute.String("folder_id", req.FolderID),
	))
	defer func() {
		countMutation("delete", err)
		endSpan(span, err)
	}()

	var (
		folder  *tree.Node
		removed []tree.RemovedNode
	)
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.loadFolder(ctx, req.FolderID)
		if err != nil {
			return err
		}

		removed, err = s.nodes.DeleteByPathPrefix(ctx, folder.SiteID, folder.FullPath())
		if err != nil {
			return err
		}

		// Covered by the subtree delete; kept so the folder row can never survive it
		return s.nodes.DeleteByID(ctx, folder.ID)
	})
	if err != nil {
		err = s.translate(err, "")
		return s.fail("delete folder", err), err
	}

	folders, pages, assets := tree.PartitionRemoved(removed)
	s.releaseContent(ctx, folder.SiteID, pages, assets)

	nodesRemoved.WithLabelValues(string(tree.NodeTypeFolder)).Add(float64(len(folders)))
	nodesRemoved.WithLabelValues(string(tree.NodeTypePage)).Add(float64(len(pages)))
	nodesRemoved.WithLabelValues(string(tree.NodeTypeAsset)).Add(float64(len(assets)))
	span.SetAttributes(attribute.Int("removed", len(removed)))

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"site_id", folder.SiteID,
		"path", folder.FullPath().External(),
		"folders", len(folders),
		"pages", len(pages),
		"assets", len(assets),
	)

	result = tree.Succeed(msgFolderDeleted)
	result.Removed = &tree.RemovedSet{Folders: len(folders), Pages: len(pages), Assets: len(assets)}
	return result, nil
}

// resolveParentFolder returns the full path of the parent folder, or the root
// when parentID is empty.
func (s *folderService) resolveParentFolder(ctx context.Context, siteID, parentID string) (treepath.Path, error) {
	if parentID == "" {
		return nil, nil
	}

	parent, err := s.nodes.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.SiteID != siteID {
		return nil, domain.NewNotFoundError(domain.CodeParentNotFound, fmt.Sprintf("parent folder %s not found", parentID))
	}
	if !parent.IsFolder() {
		return nil, domain.NewValidationError(domain.CodeParentNotFolder, fmt.Sprintf("parent %s is a %s, not a folder", parentID, parent.Type))
	}
	return parent.FullPath(), nil
}

// loadFolder loads a folder, treating other node types as missing.
func (s *folderService) loadFolder(ctx context.Context, id string) (*tree.Node, error) {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if node == nil || !node.IsFolder() {
		return nil, domain.NewNotFoundError(domain.CodeFolderNotFound, fmt.Sprintf("folder %s not found", id))
	}
	return node, nil
}

// releaseContent notifies the cleaner. Failures are logged; the delete has
// already committed.
func (s *folderService) releaseContent(ctx context.Context, siteID string, pages, assets []string) {
	if s.cleaner == nil {
		return
	}
	if len(pages) > 0 {
		if err := s.cleaner.PagesRemoved(ctx, siteID, pages); err != nil {
			s.logger.Error("page cleanup failed", "site_id", siteID, "pages", len(pages), "error", err)
		}
	}
	if len(assets) > 0 {
		if err := s.cleaner.AssetsRemoved(ctx, siteID, assets); err != nil {
			s.logger.Error("asset cleanup failed", "site_id", siteID, "assets", len(assets), "error", err)
		}
	}
}

// translate maps storage uniqueness and serialization failures to domain
// conflicts; domain errors pass through.
func (s *folderService) translate(err error, pathName string) error {
	switch {
	case errors.Is(err, repositories.ErrUniqueViolation):
		return &domain.ConflictError{
			Code:         domain.CodeFolderAlreadyExists,
			Message:      fmt.Sprintf("a node named %q already exists in this folder", pathName),
			ResourceType: string(tree.NodeTypeFolder),
		}
	case errors.Is(err, repositories.ErrSerializationFailure):
		return &domain.ConflictError{
			Code:         domain.CodeConcurrentUpdate,
			Message:      "the folder was changed by another request; retry the operation",
			ResourceType: string(tree.NodeTypeFolder),
		}
	}
	return err
}

// fail converts err into a failed result. Errors without a code are logged
// and reported generically.
func (s *folderService) fail(operation string, err error) *tree.OperationResult {
	var coded domain.CodedError
	if errors.As(err, &coded) && coded.ErrorCode() != "" {
		s.logger.Debug(operation+" rejected", "code", coded.ErrorCode(), "error", err)
		return tree.Fail(coded.ErrorCode(), coded.Error())
	}

	s.logger.Error(operation+" failed", "error", err)
	return tree.Fail(domain.CodeInternal, msgInternal)
}

func folderExists(path treepath.Path, existingID string) error {
	return &domain.ConflictError{
		Code:         domain.CodeFolderAlreadyExists,
		Message:      fmt.Sprintf("a node named %q already exists in this folder", path.Last()),
		ResourceType: string(tree.NodeTypeFolder),
		ResourceID:   existingID,
	}
}
