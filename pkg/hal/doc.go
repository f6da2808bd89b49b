// Package hal models HAL+JSON resources: links, the Linked capability and the
// declarative schemas that project raw API bodies into typed models.
//
// A model declares its wire fields once:
//
//	func (Customer) Schema() hal.Schema {
//		return hal.WithLinks(hal.Schema{
//			"id":     hal.Copy(),
//			"status": hal.Enum(StatusVerified, StatusSuspended),
//		})
//	}
//
// Decode projects a decoded JSON value through that schema, dropping
// undeclared fields and unknown enum values, then fills the struct.
package hal
