package module

//Provider supplies the set of loaded code modules; it is host owned so
//alternate hosts can plug their own enumeration
type Provider interface {
	Modules() ([]*Module, error)
}

//Modules is a static Provider over a fixed module list
type Modules []*Module

//Modules returns the receiver
func (m Modules) Modules() ([]*Module, error) {
	return m, nil
}
