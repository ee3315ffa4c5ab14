// Package publish pushes evaluated channels to a socket.io server so a live
// viewer can follow a scene while it is being edited.
package publish
