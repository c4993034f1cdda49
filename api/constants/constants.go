package constants

// Form field and response keys
const (
	KeySessionName = "name"
	KeyDepotType   = "depot_type"
	KeyFile        = "file"
	ValueSuccess   = "success"
	ValueError     = "error"
)

// Stored file types (files.file_type)
const (
	FileTypeMask     = "mask"
	FileTypeTemplate = "template"
	FileTypeFinal    = "final"
)

// Audit actions recorded by the handlers. Engine level actions
// (STATUT_Q_DETECTED, LOECART_CREATED, ...) live in the engine package.
const (
	AuditMaskUploaded      = "MASK_UPLOADED"
	AuditTemplateGenerated = "TEMPLATE_GENERATED"
	AuditFinalFileCreated  = "FINAL_FILE_CREATED"
	AuditGapDistributed    = "GAP_DISTRIBUTED"
)

// Computed session statuses shown on the history screen
const (
	StatusCreated       = "CREATED"
	StatusMaskImported  = "MASK_IMPORTED"
	StatusTemplateReady = "TEMPLATE_READY"
	StatusFinalReady    = "FINAL_READY"
)

// Content types for file downloads
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const DateTimeFormat = "2006-01-02 15:04:05"
