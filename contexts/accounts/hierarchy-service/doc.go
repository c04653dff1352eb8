// Package hierarchyservice manages the two-tier manager hierarchy inside
// each bank and resolves which user ids an actor may view.
//
// Layering follows the other account services: application services over
// explicit ports, with memory and postgres adapters.
//
// Access policy: visibility resolution fails open. The policy lives in
// application.FailOpenVisibility and nowhere else; see that function before
// changing anything about restriction behavior.
package hierarchyservice
