/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension that needs configuration declares a type implementing
Configuration and stores a single instance of it under its package name. The
value is loaded from the genesis file during the chain initialization and
read by handlers using Load.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client. Application must be
terminated and configured correctly.
*/
package gconf
