package memory

import "github.com/parquimetro-map/internal/domain"

// Справочник, поставляемый вместе с сервисом. Координаты в порядке [lon, lat].

var municipios = []domain.Municipio{
	{ID: 1, Name: "Monterrey"},
	{ID: 2, Name: "San Pedro Garza García"},
	{ID: 3, Name: "Guadalupe"},
	{ID: 4, Name: "San Nicolás de los Garza"},
}

var ciudades = []domain.Ciudad{
	{ID: 10, MunicipioID: 1, Name: "Centro", Coordenada: domain.NewCoordinate(-100.3161, 25.6714)},
	{ID: 11, MunicipioID: 1, Name: "Obispado", Coordenada: domain.NewCoordinate(-100.3460, 25.6737)},
	{ID: 12, MunicipioID: 1, Name: "Cumbres", Coordenada: domain.NewCoordinate(-100.4050, 25.7250)},
	{ID: 20, MunicipioID: 2, Name: "Del Valle", Coordenada: domain.NewCoordinate(-100.3630, 25.6540)},
	{ID: 21, MunicipioID: 2, Name: "Valle Oriente", Coordenada: domain.NewCoordinate(-100.3460, 25.6400)},
	{ID: 30, MunicipioID: 3, Name: "Centro de Guadalupe", Coordenada: domain.NewCoordinate(-100.2560, 25.6770)},
	{ID: 31, MunicipioID: 3, Name: "Linda Vista", Coordenada: domain.NewCoordinate(-100.2420, 25.6890)},
	{ID: 40, MunicipioID: 4, Name: "Anáhuac", Coordenada: domain.NewCoordinate(-100.3050, 25.7350)},
}

var parquimetros = []domain.Parquimetro{
	{ID: 1, Coordenada: domain.NewCoordinate(-100.3098, 25.6695), Description: "Parquímetro Calle Morelos y Zaragoza"},
	{ID: 2, Coordenada: domain.NewCoordinate(-100.3125, 25.6702), Description: "Parquímetro Padre Mier y Escobedo"},
	{ID: 3, Coordenada: domain.NewCoordinate(-100.3172, 25.6741), Description: "Parquímetro Juárez y Ocampo"},
	{ID: 4, Coordenada: domain.NewCoordinate(-100.3447, 25.6752), Description: "Parquímetro Hidalgo y Degollado"},
	{ID: 5, Coordenada: domain.NewCoordinate(-100.3615, 25.6547), Description: "Parquímetro Calzada del Valle"},
	{ID: 6, Coordenada: domain.NewCoordinate(-100.3588, 25.6561), Description: "Parquímetro Río Orinoco"},
	{ID: 7, Coordenada: domain.NewCoordinate(-100.3467, 25.6412), Description: "Parquímetro Av. Lázaro Cárdenas"},
	{ID: 8, Coordenada: domain.NewCoordinate(-100.2569, 25.6776), Description: "Parquímetro Plaza Principal de Guadalupe"},
	{ID: 9, Coordenada: domain.NewCoordinate(-100.3041, 25.7362), Description: "Parquímetro Av. Universidad"},
}

// Dataset возвращает копии справочника для заполнения других хранилищ
func Dataset() ([]domain.Municipio, []domain.Ciudad, []domain.Parquimetro) {
	return cloneMunicipios(), cloneCiudades(), cloneParquimetros()
}

func cloneMunicipios() []domain.Municipio {
	return append([]domain.Municipio(nil), municipios...)
}

func cloneCiudades() []domain.Ciudad {
	return append([]domain.Ciudad(nil), ciudades...)
}

func cloneParquimetros() []domain.Parquimetro {
	return append([]domain.Parquimetro(nil), parquimetros...)
}
