/*
Package observability provides tools for monitoring the unabs engine.

It includes lifecycle hooks that audit every run into a structured logger,
and a recorder that keeps the events of recent runs in memory so they can be
inspected or asserted on.
*/
package observability
