package models

// Estado represents a state in the geographic reference data
type Estado struct {
	IDEstado     int64  `json:"id_estado"`
	NombreEstado string `json:"nombre_estado"`
}

// Ciudad represents a city belonging to a state
type Ciudad struct {
	IDCiudad     int64  `json:"id_ciudad"`
	NombreCiudad string `json:"nombre_ciudad"`
	IDEstado     int64  `json:"id_estado"`
}

// Colonia represents a neighborhood belonging to a city
type Colonia struct {
	IDColonia     int64  `json:"id_colonia"`
	NombreColonia string `json:"nombre_colonia"`
	CodigoPostal  string `json:"codigo_postal,omitempty"`
	IDCiudad      int64  `json:"id_ciudad"`
}

// CiudadPorCP is the city/state pair resolved from a postal code
type CiudadPorCP struct {
	IDCiudad     int64  `json:"id_ciudad"`
	NombreCiudad string `json:"nombre_ciudad"`
	IDEstado     int64  `json:"id_estado"`
	NombreEstado string `json:"nombre_estado"`
}
