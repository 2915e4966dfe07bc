/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "fmt"

// Action is the outcome class of a classification.
type Action int

const (
	// ActionKeep emits a property for the field.
	ActionKeep Action = iota
	// ActionSkip drops the field silently.
	ActionSkip
	// ActionSkipLazyTwin drops the storage twin of an ignored lazy field.
	ActionSkipLazyTwin
	// ActionFail aborts the discovery pass.
	ActionFail
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionSkip:
		return "skip"
	case ActionSkipLazyTwin:
		return "skip_lazy_twin"
	case ActionFail:
		return "fail"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// SkipReason explains a silent skip. Skips are policy, not errors.
type SkipReason string

const (
	SkipIgnored     SkipReason = "ignored"
	SkipLazyTwin    SkipReason = "lazy_twin"
	SkipUnsupported SkipReason = "unsupported"
	SkipReadOnly    SkipReason = "readonly"
	SkipComputed    SkipReason = "computed"
	SkipUnbridged   SkipReason = "unbridged"
	SkipUnbound     SkipReason = "unbound"
)

// ErrorKind is the taxonomy of fatal discovery failures.
type ErrorKind int

const (
	// KindLazyPropertyNotAllowed: a lazy field is neither ignored nor made eager.
	KindLazyPropertyNotAllowed ErrorKind = iota + 1
	// KindUnsupportedPropertyType: a declared accessor uses a non-storable type.
	KindUnsupportedPropertyType
	// KindUnsupportedOptionalWrapperType: an optional wrapper wraps a type outside the built-in set.
	KindUnsupportedOptionalWrapperType
	// KindInvalidPropertyName: empty, non-identifier, or reserved-prefix name.
	KindInvalidPropertyName
	// KindDuplicatePropertyName: two kept fields share a name.
	KindDuplicatePropertyName
	// KindInvalidObjectType: the discovered type is not a struct.
	KindInvalidObjectType
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindLazyPropertyNotAllowed:
		return "LazyPropertyNotAllowed"
	case KindUnsupportedPropertyType:
		return "UnsupportedPropertyType"
	case KindUnsupportedOptionalWrapperType:
		return "UnsupportedOptionalWrapperType"
	case KindInvalidPropertyName:
		return "InvalidPropertyName"
	case KindDuplicatePropertyName:
		return "DuplicatePropertyName"
	case KindInvalidObjectType:
		return "InvalidObjectType"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Decision is the structured result of classifying one field.
type Decision struct {
	// Action is the outcome class.
	Action Action
	// Reason is set for ActionSkip and ActionSkipLazyTwin.
	Reason SkipReason
	// BaseName is the logical field name for lazy twins.
	BaseName string
	// Kind is set for ActionFail.
	Kind ErrorKind
	// Message describes the failure for ActionFail.
	Message string
	// Binding is set for ActionKeep.
	Binding Binding
}

// Keep returns a keep decision with binding b.
func Keep(b Binding) Decision {
	return Decision{Action: ActionKeep, Binding: b}
}

// Skip returns a silent skip decision.
func Skip(reason SkipReason) Decision {
	return Decision{Action: ActionSkip, Reason: reason}
}

// Fail returns a failure decision.
func Fail(kind ErrorKind, format string, args ...any) Decision {
	return Decision{Action: ActionFail, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
