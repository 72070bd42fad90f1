package entity

// Customer cliente de la tienda.
type Customer struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	DNI           string `json:"dni"`
	Direccion     string `json:"direccion"`
	FechaRegistro string `json:"fechaRegistro,omitempty"`
	Estado        string `json:"estado,omitempty"`
}

// FullName nombre y apellido para selects y comprobantes.
func (c Customer) FullName() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}
