package customer

type IDGenerator interface {
	NewID() string
}
