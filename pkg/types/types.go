package types

import "time"

// AssetType classifies what an Asset produces.
type AssetType string

const (
	AssetTypeOil    AssetType = "oil"
	AssetTypeGas    AssetType = "gas"
	AssetTypeMining AssetType = "mining"
	AssetTypeEnergy AssetType = "energy"
)

// AssetStatus is the regulatory status of an Asset.
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInactive AssetStatus = "inactive"
	AssetStatusShutIn   AssetStatus = "shut-in"
)

// Asset is a well or production lease. ID is deterministic from
// (source, natural key) — see pkg/normalize.DeterministicID — and never
// mutates once assigned.
type Asset struct {
	ID                           string
	Type                         AssetType
	Name                         string
	State                        string // 2-letter postal code
	County                       string
	Latitude                     float64 // 0/0 is a valid "unknown" pair, not the equator
	Longitude                    float64
	Basin                        *string
	OperatorID                   *string
	Status                       AssetStatus
	SpudDate                     *time.Time
	DepthFt                      *int
	Commodity                    string
	DeclineRate                  *float64
	EstimatedRemainingLifeMonths *int
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// Operator is the legal entity responsible for an Asset's compliance.
// Aliases accumulates every raw-source name variant ever seen for this
// operator; it only grows, even across merges.
type Operator struct {
	ID               string
	LegalName        string
	Aliases          []string
	HQState          *string
	HQCity           *string
	ActiveAssetCount int
	ComplianceFlags  []string
	RiskScore        *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductionRecord is one asset's reported volumes for one calendar
// month. Month is always normalized to the first of the month, UTC.
type ProductionRecord struct {
	ID            int64
	AssetID       string
	Month         time.Time
	OilVolumeBBL  *float64
	GasVolumeMCF  *float64
	OreVolumeTons *float64
	WaterCutPct   *float64
	DowntimeDays  *int
	CreatedAt     time.Time
}

// FinancialEstimate is written by a downstream calculator, outside the
// core. The core only reads it, to remap it onto the canonical asset
// during dedup instead of letting it dangle or be deleted.
type FinancialEstimate struct {
	ID      int64
	AssetID string
	AsOf    time.Time
}

// ProvenanceStatus is the outcome of one ingestion run.
type ProvenanceStatus string

const (
	ProvenanceSuccess ProvenanceStatus = "success"
	ProvenancePartial ProvenanceStatus = "partial"
	ProvenanceFailed  ProvenanceStatus = "failed"
)

// DataProvenance is one audit row per ingestion run. Exactly one row is
// written per source load regardless of outcome.
type DataProvenance struct {
	ID          int64
	SourceName  string
	SourceURL   string
	IngestedAt  time.Time
	RecordCount int
	Status      ProvenanceStatus
	Notes       string
}

// Batch is what a Source Adapter hands to the Loader: everything
// discovered during one Download+Parse+Map pass over one source.
type Batch struct {
	SourceTag   string
	SourceURL   string
	Assets      map[string]*Asset // keyed by Asset.ID
	Operators   []*Operator
	Productions []*ProductionRecord
	// ProductionStage holds production rows that carry lat/lon but no
	// asset key; the Loader resolves each to the nearest existing asset
	// via a spatial join instead of a direct foreign key.
	ProductionStage []*StagedProduction
	ParseErrors     int
}

// StagedProduction is a production row awaiting a spatial join to its
// asset, because the source delivered coordinates instead of an asset
// key.
type StagedProduction struct {
	Latitude      float64
	Longitude     float64
	Month         time.Time
	OilVolumeBBL  *float64
	GasVolumeMCF  *float64
	OreVolumeTons *float64
	WaterCutPct   *float64
	DowntimeDays  *int
	// Delta is the ± lat/lon window to search within; it is source
	// precision dependent, typically 0.002°-0.005°.
	Delta float64
}

// LoadResult summarizes one Loader.Load call.
type LoadResult struct {
	ProvenanceID      int64
	AssetsUpserted    int
	OperatorsUpserted int
	ProductionInsert  int
	Duration          time.Duration
	Errors            []error
}

// Status derives the provenance status for this result: failed on a
// fatal/rolled-back load or when batches errored and none wrote a row,
// partial when some batches errored but others committed, success
// otherwise.
func (r LoadResult) Status(fatal bool) ProvenanceStatus {
	if fatal {
		return ProvenanceFailed
	}
	if len(r.Errors) > 0 && (r.AssetsUpserted > 0 || r.OperatorsUpserted > 0 || r.ProductionInsert > 0) {
		return ProvenancePartial
	}
	if len(r.Errors) > 0 {
		return ProvenanceFailed
	}
	return ProvenanceSuccess
}

// DedupMergeEvent records one operator or asset merge performed by the
// Deduplicator, kept for post-hoc review: ambiguous merges are logged,
// not queued for human approval.
type DedupMergeEvent struct {
	Kind            string // "operator" or "asset"
	CanonicalID     string
	MergedID        string
	Strategy        string // "exact", "fuzzy", "alias", "proximity"
	CrossStateMatch bool
	DetectedAt      time.Time
}

// DedupResult summarizes one Deduplicator.Run call.
type DedupResult struct {
	OperatorGroups    int
	OperatorsMerged   int
	AssetGroups       int
	AssetsMerged      int
	CrossStateMatches int
	DryRun            bool
	Details           []DedupMergeEvent
}

// LinkEvent records one asset successfully rebound to an operator by
// the Linker.
type LinkEvent struct {
	AssetID     string
	OperatorID  string
	MatchedName string
	CrossState  bool
}

// LinkResult summarizes one Linker.Run call.
type LinkResult struct {
	AssetsLinked int
	CrossState   int
	Events       []LinkEvent
}

// SourceRunStatus is the outcome the orchestrator records per source in
// its schedule state file.
type SourceRunStatus string

const (
	SourceRunSuccess SourceRunStatus = "success"
	SourceRunPartial SourceRunStatus = "partial"
	SourceRunFailed  SourceRunStatus = "failed"
)

// SourceState is persisted between scheduler runs so operators can
// observe schedule health without re-running anything.
type SourceState struct {
	SourceTag  string          `json:"source_tag"`
	LastRun    time.Time       `json:"last_run"`
	LastStatus SourceRunStatus `json:"last_status"`
}
