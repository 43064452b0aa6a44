package dto

// CiudadesRequest - фильтр ciudades по муниципалитету (0 - пустой список)
type CiudadesRequest struct {
	MunicipioID int64 `query:"municipio_id" validate:"min=0"`
}
