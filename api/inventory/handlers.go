package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"Moulinette/api"
	"Moulinette/api/constants"
	"Moulinette/api/inventory/engine"
	"Moulinette/api/inventory/maskfile"
	"Moulinette/internal/config"
	"Moulinette/internal/logger"
	"Moulinette/internal/session"
)

var maskExtensions = []string{".csv"}
var templateExtensions = []string{".xlsx", ".xls"}

func parseSessionID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["session_id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", raw)
	}
	return id, nil
}

// readUpload pulls one file out of the multipart form and enforces the
// extension whitelist and the size cap.
func readUpload(r *http.Request, allowedExts []string) ([]byte, string, string, error) {
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		return nil, "", "", errors.New(constants.ErrFailedToParseMultipartForm)
	}
	file, header, err := r.FormFile(constants.KeyFile)
	if err != nil {
		return nil, "", "", errors.New(constants.ErrFileRequired)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range allowedExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", "", errors.New(constants.FormatError(constants.ErrInvalidExtension, ext, strings.Join(allowedExts, ", ")))
	}
	if header.Size > config.MaxUploadBytes {
		return nil, "", "", errors.New(constants.FormatError(constants.ErrFileTooLarge,
			header.Size/(1024*1024), config.MaxUploadBytes/(1024*1024)))
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	if len(content) == 0 {
		return nil, "", "", errors.New(constants.ErrEmptyFile)
	}
	return content, header.Filename, ext, nil
}

func auditMsg(l *logger.LoggerService, msg string) {
	if l != nil {
		l.LogAudit(msg)
	}
}

// UploadMask handles stage 1 and 2 of the wizard in one call: the mask is
// parsed and validated against the depot context, aggregated, and the
// counting template is generated right away. Nothing is persisted when
// validation fails, except quarantine rejections which are kept with
// their audit trail so the user can see which lots blocked the upload.
func UploadMask(store *Store, cache *session.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		content, _, _, err := readUpload(r, maskExtensions)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		sessionName := strings.TrimSpace(r.FormValue(constants.KeySessionName))
		if sessionName == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrSessionNameRequired)
			return
		}
		depot, err := engine.ParseDepotType(r.FormValue(constants.KeyDepotType))
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest,
				constants.FormatError(constants.ErrInvalidDepotType, r.FormValue(constants.KeyDepotType)))
			return
		}

		mask, err := maskfile.Parse(content)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest,
				constants.FormatError(constants.ErrInvalidMaskFile, err.Error()))
			return
		}
		rows := mask.StockRows()
		if len(rows) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoStockLines)
			return
		}
		meta := mask.Metadata()
		batchID := uuid.New().String()

		stats, engineAudits, err := engine.ValidateExtract(rows, depot)
		if err != nil {
			var qErr *engine.QuarantineError
			if errors.As(err, &qErr) {
				sessionID, persistErr := persistQuarantineRejection(ctx, store, sessionName, depot, meta, content, engineAudits, batchID)
				if persistErr != nil {
					api.LogError("quarantine audit persistence failed: %v", persistErr)
				}
				auditMsg(logger.GlobalLogger, fmt.Sprintf("Upload rejected, %d lot(s) in status Q (batch %s)", len(qErr.Lots), batchID))
				api.RespondWithPayload(w, false, constants.ErrQuarantineDetected, map[string]interface{}{
					"sessionID":      sessionID,
					"quarantineLots": qErr.Lots,
				})
				return
			}
			var cErr *engine.ContextMismatchError
			if errors.As(err, &cErr) {
				api.RespondWithError(w, http.StatusUnprocessableEntity,
					constants.FormatError(constants.ErrDepotIncompatible, string(cErr.Depot), strings.Join(cErr.Statuses, ", ")))
				return
			}
			api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		lines, err := engine.Aggregate(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusUnprocessableEntity,
				constants.FormatError(constants.ErrInvalidMaskFile, err.Error()))
			return
		}

		// The two stage transitions are validated even though they run
		// back to back in this request.
		step := engine.StepContext
		for _, next := range []engine.Step{engine.StepImported, engine.StepTemplate} {
			if err := engine.Advance(step, next); err != nil {
				api.RespondWithError(w, http.StatusConflict,
					constants.FormatError(constants.ErrWorkflowTransition, err.Error()))
				return
			}
			step = next
		}

		templateBytes, err := maskfile.BuildTemplate(meta, lines)
		if err != nil {
			api.LogError("template build failed: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}

		tx, err := store.Begin(ctx)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrTransactionFailed)
			return
		}
		defer tx.Rollback(ctx)

		sessionID, err := store.CreateSession(ctx, tx, meta.SessionNum, sessionName, int(step))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		inventoryID, err := store.CreateInventory(ctx, tx, sessionID, meta.InventoryNum, string(depot), meta.Site)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		maskName := maskfile.MaskFileName(sessionID, meta)
		templateName := maskfile.TemplateFileName(sessionID, meta)
		if err := store.SaveFile(ctx, tx, inventoryID, maskName, constants.FileTypeMask, content); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		if err := store.SaveFile(ctx, tx, inventoryID, templateName, constants.FileTypeTemplate, templateBytes); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		uploadDetails := fmt.Sprintf("Masque %s importé (batch %s): %d lignes, %d articles, %d lots",
			maskName, batchID, stats.TotalRows, stats.DistinctProducts, stats.DistinctLots)
		if err := store.AddAudit(ctx, tx, inventoryID, constants.AuditMaskUploaded, uploadDetails); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrAuditLogFailed)
			return
		}
		templateDetails := fmt.Sprintf("Template %s généré: %d ligne(s) à compter", templateName, len(lines))
		if err := store.AddAudit(ctx, tx, inventoryID, constants.AuditTemplateGenerated, templateDetails); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrAuditLogFailed)
			return
		}
		if err := tx.Commit(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrTransactionCommitFailed)
			return
		}

		cache.Put(sessionID, depot, stats)
		auditMsg(logger.GlobalLogger, fmt.Sprintf("Session %d created from mask %s (batch %s)", sessionID, maskName, batchID))

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"message":      constants.SuccessMaskUploaded,
			"sessionID":    sessionID,
			"inventoryID":  inventoryID,
			"sessionNUM":   meta.SessionNum,
			"inventoryNUM": meta.InventoryNum,
			"site":         meta.Site,
			"currentStep":  int(step),
			"stats":        stats,
		})
	}
}

// persistQuarantineRejection keeps a rejected upload queryable: the
// session and inventory rows are created at the initial step with the
// raw mask attached, and one audit row per quarantined lot is written.
func persistQuarantineRejection(ctx context.Context, store *Store, sessionName string, depot engine.DepotType, meta maskfile.Metadata, content []byte, audits []engine.AuditEntry, batchID string) (int64, error) {
	tx, err := store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	sessionID, err := store.CreateSession(ctx, tx, meta.SessionNum, sessionName, int(engine.StepContext))
	if err != nil {
		return 0, err
	}
	inventoryID, err := store.CreateInventory(ctx, tx, sessionID, meta.InventoryNum, string(depot), meta.Site)
	if err != nil {
		return 0, err
	}
	if err := store.SaveFile(ctx, tx, inventoryID, maskfile.MaskFileName(sessionID, meta), constants.FileTypeMask, content); err != nil {
		return 0, err
	}
	for _, a := range audits {
		details := fmt.Sprintf("%s (batch %s)", a.Details, batchID)
		if err := store.AddAudit(ctx, tx, inventoryID, a.Action, details); err != nil {
			return 0, err
		}
	}
	if err := store.SetSessionStep(ctx, tx, sessionID, int(engine.StepContext), true); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return sessionID, nil
}

// sessionContext loads a session and its inventory, translating missing
// rows into a 404 on the response writer. Returns nil when handled.
func sessionContext(w http.ResponseWriter, r *http.Request, store *Store) (*Session, *Inventory) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidSessionID)
		return nil, nil
	}
	sess, err := store.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.RespondWithError(w, http.StatusNotFound,
				constants.FormatError(constants.ErrSessionNotFound, sessionID))
		} else {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
		}
		return nil, nil
	}
	inv, err := store.GetInventoryBySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.RespondWithError(w, http.StatusNotFound,
				constants.FormatError(constants.ErrInventoryNotFound, sessionID))
		} else {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
		}
		return nil, nil
	}
	return sess, inv
}

func serveStoredFile(w http.ResponseWriter, f *StoredFile) {
	contentType := constants.ContentTypeCSV
	if strings.HasSuffix(strings.ToLower(f.FileName), ".xlsx") {
		contentType = constants.ContentTypeXLSX
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Content)
}

func downloadByType(store *Store, fileType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, inv := sessionContext(w, r, store)
		if sess == nil {
			return
		}
		f, err := store.GetFile(r.Context(), inv.InventoryID, fileType)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.RespondWithError(w, http.StatusNotFound,
					constants.FormatError(constants.ErrFileNotFound, fileType, sess.SessionID))
			} else {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			}
			return
		}
		serveStoredFile(w, f)
	}
}

// DownloadTemplate streams the generated counting workbook.
func DownloadTemplate(store *Store) http.HandlerFunc {
	return downloadByType(store, constants.FileTypeTemplate)
}

// DownloadFinal streams the corrected Sage import file.
func DownloadFinal(store *Store) http.HandlerFunc {
	return downloadByType(store, constants.FileTypeFinal)
}

// DownloadFile streams any stored file by type (mask, template, final).
func DownloadFile(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileType := mux.Vars(r)["file_type"]
		switch fileType {
		case constants.FileTypeMask, constants.FileTypeTemplate, constants.FileTypeFinal:
		default:
			api.RespondWithError(w, http.StatusBadRequest,
				constants.FormatError(constants.ErrInvalidFileType, fileType))
			return
		}
		downloadByType(store, fileType)(w, r)
	}
}

// UploadFilledTemplate handles stage 4: the counted workbook comes back,
// gaps are distributed across lots and the final Sage file is rendered
// and stored. The session becomes terminal on success.
func UploadFilledTemplate(store *Store, cache *session.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess, inv := sessionContext(w, r, store)
		if sess == nil {
			return
		}
		if sess.IsCompleted {
			api.RespondWithError(w, http.StatusConflict, constants.ErrSessionCompleted)
			return
		}
		if err := engine.Advance(engine.Step(sess.CurrentStep), engine.StepResult); err != nil {
			api.RespondWithError(w, http.StatusConflict,
				constants.FormatError(constants.ErrWorkflowTransition, err.Error()))
			return
		}

		content, _, ext, err := readUpload(r, templateExtensions)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		counted, err := maskfile.ParseFilled(content, ext)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest,
				constants.FormatError(constants.ErrInvalidTemplateFile, err.Error()))
			return
		}

		maskBlob, err := store.GetFile(ctx, inv.InventoryID, constants.FileTypeMask)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		mask, err := maskfile.Parse(maskBlob.Content)
		if err != nil {
			api.LogError("stored mask for session %d no longer parses: %v", sess.SessionID, err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}
		lines, err := engine.Aggregate(mask.StockRows())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}

		countedBy := make(map[string]decimal.Decimal, len(counted))
		for _, c := range counted {
			countedBy[c.Product+"\x00"+c.Location] = c.Counted
		}

		var adjustments []engine.Adjustment
		var auditRows []engine.AuditEntry
		adjusted := 0
		for _, line := range lines {
			// A line missing from the returned workbook counts as zero,
			// same as a blank cell.
			countedQty := countedBy[line.Product+"\x00"+line.Location]
			adj, engineAudits, err := engine.DistributeGap(line, countedQty)
			if err != nil {
				api.RespondWithError(w, http.StatusUnprocessableEntity,
					constants.FormatError(constants.ErrGapDistributionError, err.Error()))
				return
			}
			adjustments = append(adjustments, adj)
			auditRows = append(auditRows, engineAudits...)
			if !adj.Gap.IsZero() {
				adjusted++
				auditRows = append(auditRows, engine.AuditEntry{
					Action: constants.AuditGapDistributed,
					Details: fmt.Sprintf("Article %s / emplacement %s: écart %s réparti sur %d lot(s), résidu %s",
						adj.Product, adj.Location, adj.Gap.String(), len(adj.Deltas), adj.Residual.String()),
				})
			}
		}

		finalBytes, err := maskfile.RenderFinal(mask, adjustments)
		if err != nil {
			api.LogError("final file render failed for session %d: %v", sess.SessionID, err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}
		meta := mask.Metadata()
		finalName := maskfile.FinalFileName(sess.SessionID, meta)

		tx, err := store.Begin(ctx)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrTransactionFailed)
			return
		}
		defer tx.Rollback(ctx)

		if err := store.SaveFile(ctx, tx, inv.InventoryID, finalName, constants.FileTypeFinal, finalBytes); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		for _, a := range auditRows {
			if err := store.AddAudit(ctx, tx, inv.InventoryID, a.Action, a.Details); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrAuditLogFailed)
				return
			}
		}
		finalDetails := fmt.Sprintf("Fichier final %s généré: %d ligne(s) ajustée(s) sur %d", finalName, adjusted, len(lines))
		if err := store.AddAudit(ctx, tx, inv.InventoryID, constants.AuditFinalFileCreated, finalDetails); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrAuditLogFailed)
			return
		}
		if err := store.SetSessionStep(ctx, tx, sess.SessionID, int(engine.StepResult), true); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		if err := store.SetInventoryCompleted(ctx, tx, inv.InventoryID); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		if err := tx.Commit(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrTransactionCommitFailed)
			return
		}

		cache.Delete(sess.SessionID)
		auditMsg(logger.GlobalLogger, fmt.Sprintf("Session %d completed, final file %s", sess.SessionID, finalName))

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"message":       constants.SuccessFinalCreated,
			"sessionID":     sess.SessionID,
			"fileName":      finalName,
			"linesTotal":    len(lines),
			"linesAdjusted": adjusted,
			"currentStep":   int(engine.StepResult),
		})
	}
}

// computedStatus derives the display status from which files exist, so a
// session interrupted mid-wizard still reports the right stage.
func computedStatus(types map[string]bool) (string, engine.Step) {
	switch {
	case types[constants.FileTypeFinal]:
		return constants.StatusFinalReady, engine.StepResult
	case types[constants.FileTypeTemplate]:
		return constants.StatusTemplateReady, engine.StepTemplate
	case types[constants.FileTypeMask]:
		return constants.StatusMaskImported, engine.StepImported
	}
	return constants.StatusCreated, engine.StepContext
}

// ActiveSessions lists sessions not yet completed, newest first.
func ActiveSessions(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListActiveSessions(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		out := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			entry := map[string]interface{}{
				"sessionID":   item.SessionID,
				"sessionNUM":  item.SessionNum,
				"sessionNAME": item.SessionName,
				"currentStep": item.CurrentStep,
				"createdAt":   item.CreatedAt.Format(constants.DateTimeFormat),
			}
			if item.Inventory != nil {
				entry["inventoryID"] = item.Inventory.InventoryID
				entry["inventoryNUM"] = item.Inventory.InventoryNum
				entry["depotType"] = item.Inventory.DepotType
				entry["site"] = item.Inventory.Site
			}
			out = append(out, entry)
		}
		api.RespondWithPayload(w, true, "", out)
	}
}

// ResumeSession rebuilds the wizard state for the front end: current
// step, derived status and extract stats (cached, or recomputed from the
// stored mask when the cache entry has expired).
func ResumeSession(store *Store, cache *session.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, inv := sessionContext(w, r, store)
		if sess == nil {
			return
		}
		types, err := store.ListFileTypes(r.Context(), inv.InventoryID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		status, step := computedStatus(types)
		if sess.IsCompleted && types[constants.FileTypeFinal] {
			step = engine.StepResult
		}

		payload := map[string]interface{}{
			"sessionID":    sess.SessionID,
			"sessionNUM":   sess.SessionNum,
			"sessionNAME":  sess.SessionName,
			"inventoryID":  inv.InventoryID,
			"inventoryNUM": inv.InventoryNum,
			"depotType":    inv.DepotType,
			"site":         inv.Site,
			"currentStep":  int(step),
			"status":       status,
			"isCompleted":  sess.IsCompleted,
			"files":        fileTypeList(types),
		}

		if entry, ok := cache.Get(sess.SessionID); ok {
			payload["stats"] = entry.Stats
		} else if types[constants.FileTypeMask] {
			if stats, ok := recomputeStats(r.Context(), store, inv); ok {
				payload["stats"] = stats
				if depot, err := engine.ParseDepotType(inv.DepotType); err == nil {
					cache.Put(sess.SessionID, depot, stats)
				}
			}
		}

		api.RespondWithPayload(w, true, "", payload)
	}
}

func recomputeStats(ctx context.Context, store *Store, inv *Inventory) (engine.Stats, bool) {
	blob, err := store.GetFile(ctx, inv.InventoryID, constants.FileTypeMask)
	if err != nil {
		return engine.Stats{}, false
	}
	mask, err := maskfile.Parse(blob.Content)
	if err != nil {
		return engine.Stats{}, false
	}
	return engine.ComputeStats(mask.StockRows()), true
}

func fileTypeList(types map[string]bool) []string {
	out := make([]string, 0, len(types))
	for _, t := range []string{constants.FileTypeMask, constants.FileTypeTemplate, constants.FileTypeFinal} {
		if types[t] {
			out = append(out, t)
		}
	}
	return out
}

// SessionStatus reports where a session stands without the full resume
// payload; cheap enough for polling.
func SessionStatus(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, inv := sessionContext(w, r, store)
		if sess == nil {
			return
		}
		types, err := store.ListFileTypes(r.Context(), inv.InventoryID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		status, step := computedStatus(types)
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"sessionID":   sess.SessionID,
			"currentStep": int(step),
			"status":      status,
			"isCompleted": sess.IsCompleted,
		})
	}
}

// SessionAudits returns the audit trail, newest first.
func SessionAudits(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, inv := sessionContext(w, r, store)
		if sess == nil {
			return
		}
		audits, err := store.ListAudits(r.Context(), inv.InventoryID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		out := make([]map[string]interface{}, 0, len(audits))
		for _, a := range audits {
			out = append(out, map[string]interface{}{
				"id":         a.ID,
				"actionType": a.ActionType,
				"details":    a.Details,
				"createdAt":  a.CreatedAt.Format(constants.DateTimeFormat),
			})
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"sessionID": sess.SessionID,
			"audits":    out,
		})
	}
}

// DeleteSession removes a session; files and audits follow by cascade.
func DeleteSession(store *Store, cache *session.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := parseSessionID(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidSessionID)
			return
		}
		deleted, err := store.DeleteSession(r.Context(), sessionID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		if !deleted {
			api.RespondWithError(w, http.StatusNotFound,
				constants.FormatError(constants.ErrSessionNotFound, sessionID))
			return
		}
		cache.Delete(sessionID)
		auditMsg(logger.GlobalLogger, fmt.Sprintf("Session %d deleted", sessionID))
		api.RespondWithResult(w, true, constants.SuccessSessionDelete)
	}
}
