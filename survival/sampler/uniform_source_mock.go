// Copyright 2025 Sonic Labs
// This file is part of Simtrial, a time-to-event simulation toolkit
//
// Simtrial is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Simtrial is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Simtrial. If not, see <http://www.gnu.org/licenses/>.

// Package sampler is a generated GoMock package.
package sampler

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockUniformSource is a mock of UniformSource interface.
type MockUniformSource struct {
	ctrl     *gomock.Controller
	recorder *MockUniformSourceMockRecorder
	isgomock struct{}
}

// MockUniformSourceMockRecorder is the mock recorder for MockUniformSource.
type MockUniformSourceMockRecorder struct {
	mock *MockUniformSource
}

// NewMockUniformSource creates a new mock instance.
func NewMockUniformSource(ctrl *gomock.Controller) *MockUniformSource {
	mock := &MockUniformSource{ctrl: ctrl}
	mock.recorder = &MockUniformSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUniformSource) EXPECT() *MockUniformSourceMockRecorder {
	return m.recorder
}

// Uniform mocks base method.
func (m *MockUniformSource) Uniform() float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Uniform")
	ret0, _ := ret[0].(float64)
	return ret0
}

// Uniform indicates an expected call of Uniform.
func (mr *MockUniformSourceMockRecorder) Uniform() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Uniform", reflect.TypeOf((*MockUniformSource)(nil).Uniform))
}
