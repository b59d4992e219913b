// Package records defines the loosely-typed raw production records the
// engine consumes and the shared machinery for pulling usable values out of
// them: candidate-key field resolution and canonical category classification.
//
// Raw records originate from two paths with different field-naming habits
// (manual encoding and spreadsheet import), so every logical attribute is
// looked up through an ordered candidate-key list instead of a single column
// name.
package records

// RawRecord is one production record as delivered by the data-access layer:
// a field-name to value mapping where values may be numbers, strings,
// date strings, time.Time, or a serialized sub-object.
type RawRecord map[string]any

// Dataset groups the raw records of the six domains for one aggregation or
// export pass. The caller has already enriched every record with farmer_id,
// farmer_name and barangay.
type Dataset struct {
	Farmers        []RawRecord
	Rice           []RawRecord
	Crops          []RawRecord
	HighValueCrops []RawRecord
	Livestock      []RawRecord
	Operators      []RawRecord
}

// Candidate-key lists per logical field, ordered by precedence. The first
// key present with a coercible value wins.
var (
	ProductionKeys = []string{"production", "production_mt", "quantity", "total_production", "volume", "yield"}
	AreaKeys       = []string{"area_harvested", "area", "area_hectares", "land_area", "farm_area", "pond_area"}
	DateKeys       = []string{"harvest_date", "date_harvested", "date", "created_at", "updated_at"}
	BarangayKeys   = []string{"barangay", "barangay_name", "area_name", "location"}
	FarmerNameKeys = []string{"farmer_name", "operator_name", "owner_name", "farmer", "name"}
	FarmerIDKeys   = []string{"farmer_id", "owner_id", "operator_id"}

	CropNameKeys      = []string{"crop", "crop_name", "commodity", "variety"}
	RiceVarietyKeys   = []string{"variety", "rice_variety", "seed_type"}
	AnimalTypeKeys    = []string{"animal_type", "animal", "livestock_type", "species"}
	SpeciesKeys       = []string{"species", "cultured_species", "fish_species"}
	SeedClassKeys     = []string{"seed_type", "seed_class", "variety_type"}
	IrrigationKeys    = []string{"area_type", "irrigation_type", "ecosystem"}
	FarmerCountKeys   = []string{"no_of_farmers", "farmer_count", "farmers"}
	HeadCountKeys     = []string{"no_of_heads", "heads", "head_count", "quantity"}
	OperationTypeKeys = []string{"type_of_operation", "operation_type", "culture_method"}
)

// HarvestKey is the legacy nested sub-object carried by crop records that
// came through the spreadsheet import path: a serialized {crop, quantity,
// month} blob. Values found inside it take precedence over flat fields.
const HarvestKey = "harvest"
