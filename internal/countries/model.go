package countries

// Country represents a country record stored in the DB and returned by the API
type Country struct {
	ID        int64   `json:"id" yaml:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `json:"nombre" yaml:"nombre" gorm:"column:nombre;type:varchar(255);not null;uniqueIndex:uq_paises_nombre"`
	Capital   string  `json:"capital" yaml:"capital" gorm:"column:capital;type:varchar(255);not null"`
	Continent *string `json:"continente" yaml:"continente" gorm:"column:continente;type:varchar(255);index:idx_paises_continente"`
	Language  *string `json:"idioma" yaml:"idioma" gorm:"column:idioma;type:varchar(255)"`
	Code      string  `json:"codigo" yaml:"codigo" gorm:"column:codigo;type:varchar(32);not null;uniqueIndex:uq_paises_codigo"`
}

// TableName specifies the table name
func (Country) TableName() string {
	return "paises"
}

// Field names a lookup column of the paises table
type Field string

const (
	FieldName      Field = "nombre"
	FieldCapital   Field = "capital"
	FieldContinent Field = "continente"
	FieldLanguage  Field = "idioma"
	FieldCode      Field = "codigo"
)

// Valid reports whether f is one of the known lookup columns
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldCapital, FieldContinent, FieldLanguage, FieldCode:
		return true
	}
	return false
}

// Summary aggregates the table for the status endpoint and summary image
type Summary struct {
	Total        int64            `json:"total_paises"`
	PerContinent map[string]int64 `json:"por_continente"`
}

// NoContinent labels rows whose continent is NULL in a Summary
const NoContinent = "sin continente"
