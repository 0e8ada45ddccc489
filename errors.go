// Copyright (c) 2021 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/hyperledger-labs/wallet-bridge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package walletbridge

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// APIError represents the error returned by the bridge APIs.
//
// Along with the error message, this error type assigns to each error
// an error category that describes how the error should be handled,
// an error code that identifies specific types of error and
// additional info that contains data related to the error as key value pairs.
type APIError interface {
	Category() ErrorCategory
	Code() ErrorCode
	Message() string
	AddInfo() interface{}
	Error() string
}

// ErrorCategory represents the category of the error, which describes how the
// error should be handled by the client.
type ErrorCategory int

const (
	// ClientError is caused by the errors in the request from the client. It
	// could be errors in arguments or configuration provided by the client or
	// an action that is not allowed in the current state.
	//
	// To resolve this, the client should provide valid arguments or wait for
	// the required state and then retry.
	ClientError ErrorCategory = iota

	// ExternalError is caused by a failure in a system not managed by the
	// bridge, such as the wallet or the blockchain node.
	//
	// To resolve this, the user should fix the external system and retry.
	ExternalError

	// InternalError is caused due to unintended behavior in the bridge.
	//
	// To resolve this, user should manually inspect the error message and
	// handle it.
	InternalError
)

// String implements the stringer interface for ErrorCategory.
func (c ErrorCategory) String() string {
	return [...]string{
		"Client",
		"External",
		"Internal",
	}[c]
}

// ErrorCode is a numeric code assigned to identify the specific type of error.
// The keys in the additional field is fixed for each error code.
type ErrorCode int

// Error code definitions.
const (
	ErrWalletNotConnected ErrorCode = 201
	ErrUnknownCurrency    ErrorCode = 202
	ErrInvalidConfig      ErrorCode = 205
	ErrWalletUnreachable  ErrorCode = 302
	ErrInvalidBalance     ErrorCode = 303
	ErrUnknownInternal    ErrorCode = 401
)

type (
	// ErrInfoInvalidConfig represents the fields in the additional info for
	// ErrInvalidConfig.
	ErrInfoInvalidConfig struct {
		Name  string
		Value string
	}

	// ErrInfoUnknownCurrency represents the fields in the additional info for
	// ErrUnknownCurrency.
	ErrInfoUnknownCurrency struct {
		Symbol string
	}

	// ErrInfoWalletUnreachable represents the fields in the additional info
	// for ErrWalletUnreachable.
	ErrInfoWalletUnreachable struct {
		Address string
		Reason  string
	}

	// ErrInfoInvalidBalance represents the fields in the additional info for
	// ErrInvalidBalance.
	ErrInfoInvalidBalance struct {
		Address string
		Balance string
	}
)

// apiError implements APIError.
//
// It implements Cause() and Unwrap() methods that return the underlying
// error, which can further be unwrapped, inspected.
//
// It also implements a custom Formatter, so that the stack trace of
// underlying error is printed when using "%+v" verb.
type apiError struct {
	category ErrorCategory
	code     ErrorCode
	err      error
	addInfo  interface{}
}

// Category returns the error category for this API Error.
func (e apiError) Category() ErrorCategory { return e.category }

// Code returns the error code for this API Error.
func (e apiError) Code() ErrorCode { return e.code }

// Message returns the error message for this API Error.
func (e apiError) Message() string { return e.err.Error() }

// AddInfo returns the additional info for this API Error.
func (e apiError) AddInfo() interface{} {
	return e.addInfo
}

// Error implement the error interface for API error.
func (e apiError) Error() string {
	return fmt.Sprintf("%s %d:%v", e.Category(), e.Code(), e.Message())
}

func (e apiError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s %d:%+v", e.Category(), e.Code(), e.err)
			return
		}
		fallthrough
	case 's':
		//nolint: errcheck,gosec	// Error of ioString need not be checked.
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e apiError) Cause() error { return e.err }

func (e apiError) Unwrap() error { return e.err }

// NewAPIErr returns an APIErr with given parameters.
//
// For most use cases, call the error code specific constructor functions.
func NewAPIErr(category ErrorCategory, code ErrorCode, err error, addInfo interface{}) APIError {
	return apiError{
		category: category,
		code:     code,
		err:      err,
		addInfo:  addInfo,
	}
}

// NewAPIErrWalletNotConnected returns an ErrWalletNotConnected API Error.
// It is returned when an operation that needs a connected wallet is invoked
// while the wallet is disconnected.
func NewAPIErrWalletNotConnected(err error) APIError {
	return NewAPIErr(
		ClientError,
		ErrWalletNotConnected,
		errors.WithMessage(err, "wallet not connected"),
		nil,
	)
}

// NewAPIErrUnknownCurrency returns an ErrUnknownCurrency API Error for the
// given currency symbol.
func NewAPIErrUnknownCurrency(symbol string) APIError {
	return NewAPIErr(
		ClientError,
		ErrUnknownCurrency,
		errors.Errorf("no currency registered for symbol %s", symbol),
		ErrInfoUnknownCurrency{
			Symbol: symbol,
		},
	)
}

// NewAPIErrInvalidConfig returns an ErrInvalidConfig API Error with the given
// config name and value.
func NewAPIErrInvalidConfig(err error, name, value string) APIError {
	message := fmt.Sprintf("invalid value for %s: %s", name, value)
	return NewAPIErr(
		ClientError,
		ErrInvalidConfig,
		errors.WithMessage(err, message),
		ErrInfoInvalidConfig{
			Name:  name,
			Value: value,
		},
	)
}

// NewAPIErrWalletUnreachable returns an ErrWalletUnreachable API Error. The
// wallet collaborator reports failures only as messages, so the reason is
// the message of err.
func NewAPIErrWalletUnreachable(err error, address string) APIError {
	return NewAPIErr(
		ExternalError,
		ErrWalletUnreachable,
		errors.WithMessage(err, "wallet unreachable"),
		ErrInfoWalletUnreachable{
			Address: address,
			Reason:  err.Error(),
		},
	)
}

// NewAPIErrInvalidBalance returns an ErrInvalidBalance API Error for a
// balance string that could not be parsed.
func NewAPIErrInvalidBalance(err error, address, balance string) APIError {
	return NewAPIErr(
		ExternalError,
		ErrInvalidBalance,
		errors.WithMessage(err, "parsing balance"),
		ErrInfoInvalidBalance{
			Address: address,
			Balance: balance,
		},
	)
}

// NewAPIErrUnknownInternal returns an ErrUnknownInternal API Error with the given
// error message.
func NewAPIErrUnknownInternal(err error) APIError {
	message := "unknown internal error"
	return NewAPIErr(
		InternalError,
		ErrUnknownInternal,
		errors.WithMessage(err, message),
		nil,
	)
}

// APIErrAsMap returns a map containing entries for the method and each of
// the fields in the api error (except message). The map can be directly passed
// to the logger for logging the data in a structured format.
func APIErrAsMap(method string, err APIError) map[string]interface{} {
	return map[string]interface{}{
		"method":   method,
		"category": err.Category().String(),
		"code":     err.Code(),
		"add info": fmt.Sprintf("%+v", err.AddInfo()),
	}
}
