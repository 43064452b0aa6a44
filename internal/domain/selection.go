package domain

// PlaceholderID - значение пункта "Selecciona una opción" в выпадающих списках
const PlaceholderID int64 = 0

// SelectionState - состояние каскадного фильтра municipio -> ciudad.
//
// FilteredCiudades всегда равен подмножеству ciudades с municipio_id ==
// SelectedMunicipioID, IsCiudadSelectDisabled == true тогда и только тогда,
// когда муниципалитет не выбран.
type SelectionState struct {
	SelectedMunicipioID    *int64   `json:"selected_municipio_id"`
	SelectedCiudadID       *int64   `json:"selected_ciudad_id"`
	FilteredCiudades       []Ciudad `json:"filtered_ciudades"`
	IsCiudadSelectDisabled bool     `json:"is_ciudad_select_disabled"`
}

// NewSelectionState - начальное состояние: ничего не выбрано, список ciudades пуст и заблокирован
func NewSelectionState() SelectionState {
	return SelectionState{
		FilteredCiudades:       []Ciudad{},
		IsCiudadSelectDisabled: true,
	}
}

// SelectMunicipio применяет смену муниципалитета.
// PlaceholderID сбрасывает выбор и блокирует список ciudades.
func (s *SelectionState) SelectMunicipio(municipioID int64, ciudades []Ciudad) {
	if municipioID == PlaceholderID {
		s.SelectedMunicipioID = nil
		s.SelectedCiudadID = nil
		s.FilteredCiudades = []Ciudad{}
		s.IsCiudadSelectDisabled = true
		return
	}

	id := municipioID
	s.SelectedMunicipioID = &id
	s.FilteredCiudades = FilterCiudades(ciudades, municipioID)
	s.IsCiudadSelectDisabled = false

	// выбранная ciudad другого муниципалитета больше не видна в списке
	if s.SelectedCiudadID != nil {
		if _, ok := FindCiudad(s.FilteredCiudades, *s.SelectedCiudadID); !ok {
			s.SelectedCiudadID = nil
		}
	}
}

// SelectCiudad отмечает выбранную ciudad. Для неизвестного id состояние не меняется
// и возвращается false.
func (s *SelectionState) SelectCiudad(ciudadID int64, ciudades []Ciudad) (Ciudad, bool) {
	ciudad, ok := FindCiudad(ciudades, ciudadID)
	if !ok {
		return Ciudad{}, false
	}
	id := ciudad.ID
	s.SelectedCiudadID = &id
	return ciudad, true
}
