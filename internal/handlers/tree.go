package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/services"
)

// maxGedcomUpload caps import payloads at 64 MiB.
const maxGedcomUpload = 64 << 20

type TreeHandler struct {
	log   *logger.Logger
	trees services.TreeService
}

func NewTreeHandler(log *logger.Logger, trees services.TreeService) *TreeHandler {
	return &TreeHandler{log: log.With("handler", "TreeHandler"), trees: trees}
}

type createTreeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *TreeHandler) CreateTree(c *gin.Context) {
	var req createTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tree, err := h.trees.CreateTree(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_tree_failed", err)
		return
	}
	c.JSON(http.StatusCreated, tree)
}

func (h *TreeHandler) GetTree(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}
	tree, err := h.trees.GetTree(c.Request.Context(), treeID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "tree_not_found", err)
		return
	}
	RespondOK(c, tree)
}

func (h *TreeHandler) ListTrees(c *gin.Context) {
	limit, offset := pagination(c)
	trees, err := h.trees.ListTrees(c.Request.Context(), limit, offset)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_trees_failed", err)
		return
	}
	RespondOK(c, gin.H{"trees": trees})
}

func (h *TreeHandler) DeleteTree(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}
	if err := h.trees.DeleteTree(c.Request.Context(), treeID); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_tree_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportGedcom accepts either a multipart upload under the "file" field
// or the raw GEDCOM text as the request body.
func (h *TreeHandler) ImportGedcom(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}

	fileName := ""
	var text []byte
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxGedcomUpload {
			RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Errorf("upload exceeds %d bytes", maxGedcomUpload))
			return
		}
		fileName = file.Filename
		reader, err := file.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_upload", err)
			return
		}
		defer reader.Close()
		text, err = io.ReadAll(io.LimitReader(reader, maxGedcomUpload))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_upload", err)
			return
		}
	} else {
		var readErr error
		text, readErr = io.ReadAll(io.LimitReader(c.Request.Body, maxGedcomUpload))
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_upload", readErr)
			return
		}
	}
	if len(text) == 0 {
		RespondError(c, http.StatusBadRequest, "empty_upload", errors.New("no GEDCOM payload provided"))
		return
	}

	record, err := h.trees.ImportGedcom(c.Request.Context(), treeID, fileName, string(text))
	if err != nil {
		h.log.Warn("GEDCOM import failed", "tree_id", treeID, "error", err)
		RespondError(c, http.StatusUnprocessableEntity, "import_failed", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ExportGedcom streams the tree back as a .ged download. With
// ?format=json the response is a JSON envelope carrying the text and
// the export warnings instead.
func (h *TreeHandler) ExportGedcom(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}
	result, err := h.trees.ExportGedcom(c.Request.Context(), treeID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	if c.Query("format") == "json" {
		RespondOK(c, gin.H{"gedcom": result.Gedcom, "warnings": result.Warnings})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", treeID.String()+".ged"))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.Gedcom))
}

func (h *TreeHandler) ListImports(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	imports, err := h.trees.ListImports(c.Request.Context(), treeID, limit, offset)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_imports_failed", err)
		return
	}
	RespondOK(c, gin.H{"imports": imports})
}

func (h *TreeHandler) RebuildAncestry(c *gin.Context) {
	treeID, ok := h.treeID(c)
	if !ok {
		return
	}
	rows, err := h.trees.RebuildAncestry(c.Request.Context(), treeID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "rebuild_ancestry_failed", err)
		return
	}
	RespondOK(c, gin.H{"rows": rows})
}

func (h *TreeHandler) treeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_tree_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}
