package domain

// Municipio - административная единица верхнего уровня
type Municipio struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Ciudad - населенный пункт, принадлежащий ровно одному муниципалитету
type Ciudad struct {
	ID          int64      `json:"id"`
	MunicipioID int64      `json:"municipio_id"`
	Name        string     `json:"name"`
	Coordenada  Coordinate `json:"coordenada"`
}

// Parquimetro - паркомат, отображается статичным маркером
type Parquimetro struct {
	ID          int64      `json:"id"`
	Coordenada  Coordinate `json:"coordenada"`
	Description string     `json:"description"`
}

// FilterCiudades возвращает все ciudades указанного муниципалитета.
// Порядок исходного списка сохраняется; результат никогда не nil.
func FilterCiudades(ciudades []Ciudad, municipioID int64) []Ciudad {
	result := make([]Ciudad, 0)
	for _, c := range ciudades {
		if c.MunicipioID == municipioID {
			result = append(result, c)
		}
	}
	return result
}

// FindCiudad ищет ciudad по id
func FindCiudad(ciudades []Ciudad, id int64) (Ciudad, bool) {
	for _, c := range ciudades {
		if c.ID == id {
			return c, true
		}
	}
	return Ciudad{}, false
}
