// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import "sync"

// A ServiceRegistration binds a provider to a well-known service name.
type ServiceRegistration struct {
	Name     string
	Provider interface{}
	Plugin   Plugin
}

// ServiceRegistry lets plugins publish providers that other plugins look up
// by name, e.g. the economy a shop plugin charges against.
type ServiceRegistry struct {
	lock          sync.RWMutex
	registrations map[string]*ServiceRegistration
}

func newServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{registrations: make(map[string]*ServiceRegistration)}
}

// Register registers provider under name. A later registration with the same
// name replaces the earlier one.
func (registry *ServiceRegistry) Register(name string, provider interface{}, plugin Plugin) {
	registry.lock.Lock()
	registry.registrations[name] = &ServiceRegistration{name, provider, plugin}
	registry.lock.Unlock()
}

// Registration returns the registration for name, or nil.
func (registry *ServiceRegistry) Registration(name string) *ServiceRegistration {
	registry.lock.RLock()
	defer registry.lock.RUnlock()
	return registry.registrations[name]
}

// Provider returns the provider registered under name, or nil.
func (registry *ServiceRegistry) Provider(name string) interface{} {
	if registration := registry.Registration(name); registration != nil {
		return registration.Provider
	}

	return nil
}

// Unregister removes every registration owned by plugin.
func (registry *ServiceRegistry) Unregister(plugin Plugin) {
	registry.lock.Lock()
	for name, registration := range registry.registrations {
		if registration.Plugin == plugin {
			delete(registry.registrations, name)
		}
	}
	registry.lock.Unlock()
}
