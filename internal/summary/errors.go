/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package summary

import "fmt"

// ErrInvalidType represents inputs that are not the expected table or
// selection type. With a concrete *table.Table parameter most of these are
// caught by the compiler; the runtime check that remains is the nil table.
type ErrInvalidType struct {
	Msg string
	Err error
}

// ErrInvalidValue represents structurally invalid inputs: an empty table,
// missing columns, or an out-of-range sample size.
type ErrInvalidValue struct {
	Msg string
	Err error
}

func (e *ErrInvalidType) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid type: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid type: %s", e.Msg)
}

func (e *ErrInvalidType) Unwrap() error {
	return e.Err
}

func (e *ErrInvalidValue) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid value: %s", e.Msg)
}

func (e *ErrInvalidValue) Unwrap() error {
	return e.Err
}
