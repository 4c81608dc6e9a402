package entity

import "strconv"

// Origin indica de dónde proviene una entidad cacheada.
type Origin string

const (
	OriginRemote Origin = "remote" // emitida por la API demo (ids secuenciales cortos)
	OriginLocal  Origin = "local"  // creada en esta aplicación (id timestamp + sufijo)
)

// remoteIDMaxDigits longitud máxima de los ids secuenciales de la API demo.
const remoteIDMaxDigits = 6

// ResolveOrigin devuelve el origen declarado. Los snapshots escritos antes de existir
// la etiqueta no la traen; en ese caso se deduce por la cantidad de dígitos del id.
func ResolveOrigin(declared Origin, id int64) Origin {
	switch declared {
	case OriginRemote, OriginLocal:
		return declared
	}
	if len(strconv.FormatInt(id, 10)) > remoteIDMaxDigits {
		return OriginLocal
	}
	return OriginRemote
}
